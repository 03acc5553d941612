package models

import "fmt"

// User is the demo domain record.
type User struct {
	ID    int64  `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

func (u User) String() string {
	if u.Email == "" {
		return fmt.Sprintf("#%d %s", u.ID, u.Name)
	}
	return fmt.Sprintf("#%d %s <%s>", u.ID, u.Name, u.Email)
}
