package schema

import (
	"encoding/json"
	"errors"
)

// Notification is the AMQP payload of an account email waiting to be sent.
type Notification struct {
	Purpose   string `json:"purpose"`
	To        string `json:"to"`
	Username  string `json:"username"`
	ActionURL string `json:"actionUrl"`
}

func (n *Notification) Marshal() ([]byte, error) {
	return json.Marshal(n)
}

func (n *Notification) Unmarshal(data []byte) error {
	if err := json.Unmarshal(data, n); err != nil {
		return err
	}
	if n.Purpose == "" || n.To == "" {
		return errors.New("notification purpose and recipient are required")
	}
	return nil
}
