package domain

import "time"

type Mural struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Created     time.Time `json:"created"`
	IsArchived  bool      `json:"isArchived"`
	Image       *string   `json:"image"`
}

type MuralUpdate struct {
	Name        *string
	Description *string
}

func (u MuralUpdate) Fields() map[string]any {
	fields := map[string]any{}
	if u.Name != nil {
		fields["name"] = *u.Name
	}
	if u.Description != nil {
		fields["description"] = *u.Description
	}
	return fields
}

type Message struct {
	ID         int64     `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Message    string    `json:"message"`
	Received   time.Time `json:"received"`
	IsArchived bool      `json:"isArchived"`
}

type Homepage struct {
	ID       int64     `json:"id"`
	Greeting string    `json:"greeting"`
	Message  string    `json:"message"`
	Created  time.Time `json:"created"`
	IsActive bool      `json:"isActive"`
}

type HomepageUpdate struct {
	Greeting *string
	Message  *string
}

func (u HomepageUpdate) Fields() map[string]any {
	fields := map[string]any{}
	if u.Greeting != nil {
		fields["greeting"] = *u.Greeting
	}
	if u.Message != nil {
		fields["message"] = *u.Message
	}
	return fields
}

// IGPost is a cached Instagram post.
type IGPost struct {
	ID        int64     `json:"id"`
	IGID      string    `json:"igId"`
	Caption   string    `json:"caption"`
	Permalink string    `json:"permalink"`
	MediaURL  string    `json:"mediaUrl"`
	MediaType string    `json:"mediaType"`
	Posted    time.Time `json:"posted"`
}

type Admin struct {
	ID               int64     `json:"id"`
	Username         string    `json:"username"`
	PasswordHash     string    `json:"-"`
	SecretQuestion   string    `json:"secretQuestion"`
	SecretAnswerHash string    `json:"-"`
	Created          time.Time `json:"created"`
}

type NewAdmin struct {
	Username       string
	Password       string
	SecretQuestion string
	SecretAnswer   string
}
