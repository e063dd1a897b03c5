package clientstore

import (
	"time"

	"github.com/greenhaven-store/greenhaven/pkg/common"
)

// Message is a contact-form entry. Messages stay client-local; they are
// never sent to the server.
type Message struct {
	ID      int64     `json:"id,string"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Subject string    `json:"subject"`
	Body    string    `json:"message"`
	Date    time.Time `json:"date"`
	Read    bool      `json:"read"`
}

// MessageStore keeps contact messages under the messages key, newest first.
type MessageStore struct {
	store *Store
}

func NewMessageStore(store *Store) *MessageStore {
	return &MessageStore{store: store}
}

func (m *MessageStore) List() []Message {
	var messages []Message
	_ = m.store.Get(KeyMessages, &messages)
	if messages == nil {
		return []Message{}
	}
	return messages
}

// Add prepends a new unread message.
func (m *MessageStore) Add(name, email, subject, body string) (Message, error) {
	msg := Message{
		ID:      common.UUIDint64(),
		Name:    name,
		Email:   email,
		Subject: subject,
		Body:    body,
		Date:    time.Now(),
	}
	messages := append([]Message{msg}, m.List()...)
	return msg, m.store.Put(KeyMessages, messages)
}

// MarkRead flags the message as read. Unknown ids are a no-op.
func (m *MessageStore) MarkRead(id int64) error {
	messages := m.List()
	changed := false
	for i := range messages {
		if messages[i].ID == id && !messages[i].Read {
			messages[i].Read = true
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return m.store.Put(KeyMessages, messages)
}

// Delete removes the message with the given id.
func (m *MessageStore) Delete(id int64) error {
	messages := m.List()
	out := messages[:0]
	for _, msg := range messages {
		if msg.ID != id {
			out = append(out, msg)
		}
	}
	if len(out) == len(messages) {
		return nil
	}
	return m.store.Put(KeyMessages, out)
}

// UnreadCount returns the number of unread messages.
func (m *MessageStore) UnreadCount() int {
	n := 0
	for _, msg := range m.List() {
		if !msg.Read {
			n++
		}
	}
	return n
}

func (m *MessageStore) Subscribe(fn func()) error {
	return m.store.Subscribe(KeyMessages, fn)
}
