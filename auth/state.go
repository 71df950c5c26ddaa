package auth

import "sync"

// subscriber is one registered auth-state observer. Notifications are
// queued on ch and drained by a dedicated goroutine, so a slow callback
// never runs on the goroutine that changed the state, and notifications
// for one subscriber arrive serialized, in state-change order.
type subscriber struct {
	ch   chan *User
	done chan struct{}
}

// OnAuthStateChanged registers fn to be called whenever the
// authenticated principal changes: with the new *User on sign-in, with
// nil on sign-out. The observer fires once with the current state
// immediately after registration.
//
// The returned function unsubscribes; it is idempotent and safe to call
// concurrently. Once it returns, fn is no longer invoked for new state
// changes.
func (c *Client) OnAuthStateChanged(fn func(*User)) (unsubscribe func()) {
	sub := &subscriber{
		ch:   make(chan *User, 16),
		done: make(chan struct{}),
	}

	c.mu.Lock()
	c.nextSubID++
	id := c.nextSubID
	if c.subscribers == nil {
		c.subscribers = make(map[int]*subscriber)
	}
	c.subscribers[id] = sub
	// Queue the current state while holding the lock so the initial
	// notification cannot arrive after a newer state change.
	sub.ch <- c.currentUser
	c.mu.Unlock()

	go func() {
		for {
			select {
			case u := <-sub.ch:
				select {
				case <-sub.done:
					return
				default:
				}
				fn(u)
			case <-sub.done:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subscribers, id)
			c.mu.Unlock()
			close(sub.done)
		})
	}
}

// CurrentUser returns the principal of the most recent successful
// sign-in on this client, or nil after sign-out.
func (c *Client) CurrentUser() *User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentUser
}

// setCurrentUser records the new state and notifies every subscriber.
func (c *Client) setCurrentUser(u *User) {
	c.mu.Lock()
	c.currentUser = u
	subs := make([]*subscriber, 0, len(c.subscribers))
	for _, sub := range c.subscribers {
		subs = append(subs, sub)
	}
	c.mu.Unlock()

	for _, sub := range subs {
		select {
		case sub.ch <- u:
		case <-sub.done:
		}
	}
}
