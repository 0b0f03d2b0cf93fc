package services

type CreateIntentCommand struct {
	Token string `validate:"required,uuid"`
}

type ConfirmCommand struct {
	Token           string `validate:"required,uuid"`
	GatewayIntentID string `validate:"required,max=255"`
}

type ScanMode string

const (
	ModeCheckExpired  ScanMode = "check_expired"
	ModeCheckExpiring ScanMode = "check_expiring"
)

type ScanCommand struct {
	BotID         int64    `validate:"required,gt=0"`
	Mode          ScanMode `validate:"required,oneof=check_expired check_expiring"`
	ThresholdDays int      `validate:"omitempty,min=1,max=365"`
}

type StatusQuery struct {
	BotID  int64  `validate:"required,gt=0"`
	Status string `validate:"omitempty,max=32"`
}
