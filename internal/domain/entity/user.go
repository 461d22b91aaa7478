// Package entity defines the records served by the remote placeholder API.
// They are transient, read-only snapshots: nothing here is persisted or
// retained between refresh cycles.
package entity

import "fmt"

// User is a person listed by the remote API. Only Name and Company are
// rendered; the remaining fields mirror the remote schema.
type User struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Address  Address `json:"address"`
	Phone    string  `json:"phone"`
	Website  string  `json:"website"`
	Company  Company `json:"company"`
}

// Address is a user's postal address.
type Address struct {
	Street  string `json:"street"`
	Suite   string `json:"suite"`
	City    string `json:"city"`
	Zipcode string `json:"zipcode"`
	Geo     Geo    `json:"geo"`
}

// Geo holds coordinates as the API sends them (strings).
type Geo struct {
	Lat string `json:"lat"`
	Lng string `json:"lng"`
}

// Company is the employer of a user.
type Company struct {
	Name        string `json:"name"`
	CatchPhrase string `json:"catchPhrase"`
	BS          string `json:"bs"`
}

// AuthorLine formats the byline shown under each post.
func (u User) AuthorLine() string {
	return fmt.Sprintf("Author: %s with %s", u.Name, u.Company.Name)
}
