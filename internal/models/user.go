package models

import "time"

// Platforms is the set of social networks an account can be connected to.
var Platforms = []string{"instagram", "tiktok", "youtube", "twitter", "linkedin", "facebook", "pinterest"}

func ValidPlatform(p string) bool {
	for _, v := range Platforms {
		if v == p {
			return true
		}
	}
	return false
}

type User struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	PasswordHash   string          `json:"-"`
	ProfileImage   string          `json:"profileImage"`
	Bio            *string         `json:"bio,omitempty"`
	Website        *string         `json:"website,omitempty"`
	Location       *string         `json:"location,omitempty"`
	IsAdmin        bool            `json:"isAdmin"`
	SocialAccounts []SocialAccount `json:"socialAccounts"`
	Preferences    Preferences     `json:"preferences"`
	Subscription   Subscription    `json:"subscription"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// SocialAccount is the embedded per-platform connection on a user record.
// Connections are unique per platform and are flagged disconnected rather
// than removed.
type SocialAccount struct {
	Platform       string     `json:"platform"`
	Username       string     `json:"username"`
	AccountID      *string    `json:"accountId,omitempty"`
	AccessToken    *string    `json:"accessToken,omitempty"`
	RefreshToken   *string    `json:"refreshToken,omitempty"`
	TokenExpiry    *time.Time `json:"tokenExpiry,omitempty"`
	IsConnected    bool       `json:"isConnected"`
	FollowerCount  int        `json:"followerCount"`
	FollowingCount int        `json:"followingCount"`
	PostCount      int        `json:"postCount"`
	LastSynced     time.Time  `json:"lastSynced"`
}

type Preferences struct {
	Notifications bool `json:"notifications"`
	DarkMode      bool `json:"darkMode"`
	EmailUpdates  bool `json:"emailUpdates"`
	AutoPost      bool `json:"autoPost"`
	DataSync      bool `json:"dataSync"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		Notifications: true,
		DarkMode:      false,
		EmailUpdates:  true,
		AutoPost:      false,
		DataSync:      true,
	}
}

type Subscription struct {
	Plan          string     `json:"plan"`
	StartDate     *time.Time `json:"startDate,omitempty"`
	EndDate       *time.Time `json:"endDate,omitempty"`
	Status        string     `json:"status"`
	PaymentMethod string     `json:"paymentMethod"`
}

func DefaultSubscription() Subscription {
	return Subscription{Plan: "free", Status: "active", PaymentMethod: "none"}
}

// ConnectedPlatforms returns the platform names the user currently has a
// live connection for.
func (u *User) ConnectedPlatforms() []string {
	var out []string
	for _, a := range u.SocialAccounts {
		if a.IsConnected {
			out = append(out, a.Platform)
		}
	}
	return out
}

// FindAccount returns the index of the social account for platform, or -1.
func (u *User) FindAccount(platform string) int {
	for i, a := range u.SocialAccounts {
		if a.Platform == platform {
			return i
		}
	}
	return -1
}
