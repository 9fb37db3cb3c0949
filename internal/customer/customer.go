package customer

import "strings"

// Customer is the identity record behind an order, keyed by email. It is
// upserted as a side effect of order creation; orders reference it by email.
type Customer struct {
	ID        int    `json:"customerId"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// DisplayName falls back to the email local part when checkout collected no
// name, matching what the confirmation email shows.
func DisplayName(name, email string) string {
	if name != "" {
		return name
	}
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}
