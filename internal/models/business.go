package models

import "time"

// Business offers bookable services and owns an employee roster.
type Business struct {
	ID          string             `db:"id" json:"id"`
	Name        string             `db:"name" json:"name"`
	OwnerUserID string             `db:"owner_user_id" json:"ownerUserId"`
	City        *string            `db:"city" json:"city,omitempty"`
	District    *string            `db:"district" json:"district,omitempty"`
	Address     *string            `db:"address" json:"address,omitempty"`
	Phone       *string            `db:"phone" json:"phone,omitempty"`
	Email       *string            `db:"email" json:"email,omitempty"`
	Employees   []BusinessEmployee `db:"-" json:"employees"`
	CreatedAt   time.Time          `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `db:"updated_at" json:"updatedAt"`
}

// BusinessEmployee is a staff member who can be individually booked.
// The business owner is enrolled as the first employee when the business
// is created, so an owner-only shop is bookable out of the box.
type BusinessEmployee struct {
	BusinessID string    `db:"business_id" json:"-"`
	UserID     string    `db:"user_id" json:"userId"`
	Active     bool      `db:"active" json:"active"`
	JoinedAt   time.Time `db:"joined_at" json:"joinedAt"`
}

// ActiveEmployees returns the subset of the roster with the active flag set.
func (b *Business) ActiveEmployees() []BusinessEmployee {
	active := make([]BusinessEmployee, 0, len(b.Employees))
	for _, e := range b.Employees {
		if e.Active {
			active = append(active, e)
		}
	}
	return active
}

// HasActiveEmployee reports whether the given user is an active roster member.
func (b *Business) HasActiveEmployee(userID string) bool {
	for _, e := range b.Employees {
		if e.UserID == userID && e.Active {
			return true
		}
	}
	return false
}

// BusinessFilter captures filtering criteria for listing businesses.
type BusinessFilter struct {
	OwnerUserID string
	Search      string
	Page        int
	PageSize    int
}
