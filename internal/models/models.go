package models

import (
	"time"
)

// user roles
const (
	RoleSuperuser = "Superuser"
	RoleAdmin     = "Admin"
	RoleClient    = "Client"
)

// post topics
const (
	TopicNature = "nature"
	TopicSport  = "sport"
	TopicArt    = "art"
	TopicTravel = "travel"
)

func ValidRole(role string) bool {
	return role == RoleSuperuser || role == RoleAdmin || role == RoleClient
}

func ValidTopic(topic string) bool {
	return topic == TopicNature || topic == TopicSport || topic == TopicArt || topic == TopicTravel
}

type Company struct {
	CompanyID   string    `json:"companyId" db:"company_id"`
	Name        string    `json:"name" db:"name"`
	URL         *string   `json:"url" db:"url"`
	Address     *string   `json:"address" db:"address"`
	DateCreated time.Time `json:"dateCreated" db:"date_created"`
	Logo        *string   `json:"logo" db:"logo"`
}

type User struct {
	UserID                 string     `json:"userId" db:"user_id"`
	Email                  string     `json:"email" db:"email"`
	PasswordHash           string     `json:"-" db:"password_hash"`
	FirstName              *string    `json:"firstName" db:"first_name"`
	LastName               *string    `json:"lastName" db:"last_name"`
	PhoneNumber            *string    `json:"phoneNumber" db:"phone_number"`
	Role                   string     `json:"role" db:"role"`
	IsStaff                bool       `json:"isStaff" db:"is_staff"`
	IsActive               bool       `json:"isActive" db:"is_active"`
	InviteAccepted         bool       `json:"inviteAccepted" db:"invite_accepted"`
	CompanyID              *string    `json:"companyId" db:"company_id"`
	LastLogin              *time.Time `json:"lastLogin" db:"last_login"`
	RefreshToken           *string    `json:"-" db:"refresh_token"`
	RefreshTokenExpiryTime *time.Time `json:"-" db:"refresh_token_expiry_time"`
}

// FullName returns "FirstName LastName" for email templates.
func (u *User) FullName() string {
	first, last := "", ""
	if u.FirstName != nil {
		first = *u.FirstName
	}
	if u.LastName != nil {
		last = *u.LastName
	}
	return first + " " + last
}

type Post struct {
	PostID    string    `json:"postId" db:"post_id"`
	Title     string    `json:"title" db:"title"`
	Text      *string   `json:"text" db:"text"`
	Topic     string    `json:"topic" db:"topic"`
	AuthorID  string    `json:"authorId" db:"author_id"`
	IsDeleted bool      `json:"isDeleted" db:"is_deleted"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

type InviteToken struct {
	TokenID   string    `json:"tokenId" db:"token_id"`
	Value     string    `json:"value" db:"value"`
	Status    bool      `json:"status" db:"status"`
	UserID    string    `json:"userId" db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	ExpDate   time.Time `json:"expDate" db:"exp_date"`
}

// Expired reports whether the token can no longer be consumed.
func (t *InviteToken) Expired(now time.Time) bool {
	return !t.Status || now.After(t.ExpDate)
}

// SelectionUser is the nested read-only view of a user with their posts.
type SelectionUser struct {
	UserID    string  `json:"userId" db:"user_id"`
	Email     string  `json:"email" db:"email"`
	FirstName *string `json:"firstName" db:"first_name"`
	LastName  *string `json:"lastName" db:"last_name"`
	Posts     []Post  `json:"posts" db:"-"`
}

// SelectionCompany is the nested read-only company view for staff listings.
type SelectionCompany struct {
	CompanyID string          `json:"companyId" db:"company_id"`
	Name      string          `json:"name" db:"name"`
	URL       *string         `json:"url" db:"url"`
	Address   *string         `json:"address" db:"address"`
	Users     []SelectionUser `json:"users" db:"-"`
}

type PortalStats struct {
	Companies int `json:"companies"`
	Users     int `json:"users"`
	Posts     int `json:"posts"`
}
