// Package scrolling routes wheel events without blocking on the main
// thread.
//
// # Overview
//
// The page side describes its scrollable hierarchy as a State snapshot:
// a tree of scrollable frames plus the page regions where fast scrolling
// is forbidden. Tree holds the live copy. Wheel events consult the Tree
// from the event-delivery thread and either scroll a node directly,
// decline so the caller redispatches through the normal path, or escalate
// to the main thread when handlers or slow regions claim the point.
//
// # Concurrency
//
// Tree is safe for concurrent use from any goroutine. Two independent
// mutexes partition the state: one guards the node tree, the slow-scroll
// region, and the main-frame scroll position (touched on every wheel
// tick); the other guards back/forward navigability and horizontal pin
// state (touched rarely, read during swipe decisions). State commits
// build the replacement node tree outside both locks and swap it in
// atomically, so an in-flight event sees the old tree or the new one,
// never a mix.
package scrolling
