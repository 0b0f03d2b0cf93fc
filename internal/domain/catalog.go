package domain

import "strings"

// PaymentCycle is a named renewal length. Days == 0 is a lifetime cycle.
type PaymentCycle struct {
	ID       int64
	Name     string
	Days     int
	IsActive bool
}

func (c PaymentCycle) IsLifetime() bool {
	return c.Days == 0
}

type PaymentPlan struct {
	ID         int64
	Title      string
	PriceCents int64
	Currency   string
	CycleID    int64
	Cycle      PaymentCycle
}

// Contact is a bot user. Read-only from the payment side.
type Contact struct {
	ID             int64
	BotID          int64
	TelegramUserID int64
	Username       string
	FirstName      string
	LastName       string
	Email          string
}

func (c *Contact) DisplayName() string {
	name := strings.TrimSpace(strings.Join([]string{c.FirstName, c.LastName}, " "))
	if name != "" {
		return name
	}
	if c.Username != "" {
		return "@" + c.Username
	}
	return "there"
}

// Bot is a messaging bot guarding one group chat.
type Bot struct {
	ID          int64
	Name        string
	Token       string
	GroupChatID int64
}
