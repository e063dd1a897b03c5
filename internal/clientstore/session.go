package clientstore

// AuthSession is the locally persisted marker for an authenticated admin.
// The server-issued token is the actual credential; this record only lets
// the client restore its signed-in state between runs.
type AuthSession struct {
	Token    string `json:"token"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Level    string `json:"level"`
}

// SaveAuthSession persists the admin marker under the auth token key.
func SaveAuthSession(store *Store, session AuthSession) error {
	return store.Put(KeyAuthToken, session)
}

// AuthSessionFrom loads the persisted admin marker, or false when absent.
func AuthSessionFrom(store *Store) (AuthSession, bool) {
	var session AuthSession
	_ = store.Get(KeyAuthToken, &session)
	return session, session.Token != ""
}

// ClearAuthSession removes the persisted admin marker.
func ClearAuthSession(store *Store) error {
	return store.Delete(KeyAuthToken)
}
