package cache

// lruNode is a link in the recency list. Each cache entry owns one node;
// the key is duplicated here so eviction can delete from the map in O(1).
type lruNode[K comparable] struct {
	key  K
	prev *lruNode[K]
	next *lruNode[K]
}

// lruList orders cache entries by recency of use. The head is the most
// recently used entry, the tail the least. Not safe for concurrent use;
// the owning cache serializes access.
type lruList[K comparable] struct {
	head *lruNode[K]
	tail *lruNode[K]
}

// pushFront inserts a new node at the head and returns it.
func (l *lruList[K]) pushFront(key K) *lruNode[K] {
	node := &lruNode[K]{key: key, next: l.head}
	if l.head != nil {
		l.head.prev = node
	} else {
		l.tail = node
	}
	l.head = node
	return node
}

// moveToFront marks an existing node as most recently used.
func (l *lruList[K]) moveToFront(node *lruNode[K]) {
	if node == l.head {
		return
	}
	l.remove(node)
	node.next = l.head
	l.head.prev = node // head is non-nil: node was in the list behind it
	l.head = node
}

// remove unlinks a node from the list.
func (l *lruList[K]) remove(node *lruNode[K]) {
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		l.head = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	} else {
		l.tail = node.prev
	}
	node.prev = nil
	node.next = nil
}

// removeTail unlinks and returns the least recently used node.
// Returns nil for an empty list.
func (l *lruList[K]) removeTail() *lruNode[K] {
	node := l.tail
	if node != nil {
		l.remove(node)
	}
	return node
}

// clear drops all nodes.
func (l *lruList[K]) clear() {
	l.head = nil
	l.tail = nil
}
