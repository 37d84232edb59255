package models

import (
	"testing"
	"time"
)

func TestValidPlatform(t *testing.T) {
	if !ValidPlatform("instagram") || !ValidPlatform("pinterest") {
		t.Fatalf("expected known platforms valid")
	}
	if ValidPlatform("myspace") || ValidPlatform("") {
		t.Fatalf("expected unknown platforms invalid")
	}
}

func TestConnectedPlatforms(t *testing.T) {
	u := &User{SocialAccounts: []SocialAccount{
		{Platform: "instagram", IsConnected: true},
		{Platform: "tiktok", IsConnected: false},
		{Platform: "youtube", IsConnected: true},
	}}

	got := u.ConnectedPlatforms()
	if len(got) != 2 || got[0] != "instagram" || got[1] != "youtube" {
		t.Fatalf("expected [instagram youtube] got %#v", got)
	}
}

func TestFindAccount(t *testing.T) {
	u := &User{SocialAccounts: []SocialAccount{
		{Platform: "instagram"},
		{Platform: "tiktok"},
	}}
	if i := u.FindAccount("tiktok"); i != 1 {
		t.Fatalf("expected index 1 got %d", i)
	}
	if i := u.FindAccount("youtube"); i != -1 {
		t.Fatalf("expected -1 got %d", i)
	}
}

func TestTrendingTopicExpired(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	noExpiry := &TrendingTopic{}
	if noExpiry.Expired(now) {
		t.Fatalf("topic without expiry should never expire")
	}
	if (&TrendingTopic{ExpiresAt: &future}).Expired(now) {
		t.Fatalf("future expiry should not be expired")
	}
	if !(&TrendingTopic{ExpiresAt: &past}).Expired(now) {
		t.Fatalf("past expiry should be expired")
	}
}

func TestDefaults(t *testing.T) {
	p := DefaultPreferences()
	if !p.Notifications || p.DarkMode || !p.EmailUpdates || p.AutoPost || !p.DataSync {
		t.Fatalf("unexpected default preferences %#v", p)
	}
	s := DefaultSubscription()
	if s.Plan != "free" || s.Status != "active" || s.PaymentMethod != "none" {
		t.Fatalf("unexpected default subscription %#v", s)
	}
}
