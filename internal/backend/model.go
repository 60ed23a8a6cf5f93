package backend

import (
	"fmt"
	"time"
)

// Role is the closed set of account roles known to the backend.
type Role string

const (
	// RoleLocateur is a rental company owner; the tenant root account.
	RoleLocateur Role = "locateur"

	// RoleEmployee is a staff account attached to a locateur's tenant.
	RoleEmployee Role = "employee"

	// RoleSuperAdmin is the platform operator account.
	RoleSuperAdmin Role = "superadmin"
)

// ParseRole validates a raw role string against the closed set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleLocateur, RoleEmployee, RoleSuperAdmin:
		return Role(s), nil
	}

	return "", fmt.Errorf("unknown role %q", s)
}

// Valid reports whether the role is one of the closed set.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// User is the authenticated identity resolved by the backend.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	Phone       string `json:"phone,omitempty"`
	Role        Role   `json:"role"`
	CompanyName string `json:"company_name,omitempty"`
	TenantID    string `json:"tenant_id,omitempty"`
}

// Token is the response of the login and register endpoints.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        *User  `json:"user"`
}

// Vehicle is a fleet vehicle record. The IMEI, when set, links the vehicle
// to its GPS tracker device.
type Vehicle struct {
	ID           string  `json:"id"`
	TenantID     string  `json:"tenant_id"`
	Make         string  `json:"make"`
	Model        string  `json:"model"`
	Year         int     `json:"year"`
	PlateNumber  string  `json:"plate_number"`
	Color        string  `json:"color,omitempty"`
	DailyRate    float64 `json:"daily_rate"`
	Status       string  `json:"status"`
	FuelType     string  `json:"fuel_type,omitempty"`
	Transmission string  `json:"transmission,omitempty"`
	Mileage      int     `json:"mileage,omitempty"`
	IMEI         string  `json:"imei,omitempty"`
}

// TrackedObject is the latest telemetry snapshot of one GPS device, as
// relayed by the backend from the tracking provider. Snapshots are replaced
// wholesale on every poll; only IMEI is a stable identity.
type TrackedObject struct {
	IMEI        string         `json:"imei"`
	Name        string         `json:"name"`
	Model       string         `json:"model,omitempty"`
	PlateNumber string         `json:"plate_number,omitempty"`
	Lat         float64        `json:"lat"`
	Lng         float64        `json:"lng"`
	Altitude    float64        `json:"altitude,omitempty"`
	Angle       float64        `json:"angle"`
	Speed       float64        `json:"speed"`
	Odometer    float64        `json:"odometer"`
	Active      bool           `json:"active"`
	LocValid    bool           `json:"loc_valid"`
	DTTracker   string         `json:"dt_tracker,omitempty"`
	DTServer    string         `json:"dt_server,omitempty"`
	Params      map[string]any `json:"params,omitempty"`
	Device      string         `json:"device,omitempty"`
	SimNumber   string         `json:"sim_number,omitempty"`
	VIN         string         `json:"vin,omitempty"`
	EngineHours float64        `json:"engine_hours,omitempty"`
}

// trackerTimeLayout is the provider's "dt_*" timestamp format.
const trackerTimeLayout = "2006-01-02 15:04:05"

// LastReport parses the device's last report timestamp. The second return
// is false when the device has never reported or the value is unparsable.
func (o *TrackedObject) LastReport() (time.Time, bool) {
	if o.DTTracker == "" {
		return time.Time{}, false
	}

	if ts, err := time.Parse(trackerTimeLayout, o.DTTracker); err == nil {
		return ts, true
	}

	if ts, err := time.Parse(time.RFC3339, o.DTTracker); err == nil {
		return ts, true
	}

	return time.Time{}, false
}

// Conversation is a two-party message thread. UnreadCount is keyed by
// participant ID; a missing entry means zero unread messages.
type Conversation struct {
	ID               string         `json:"id"`
	Participants     []string       `json:"participants"`
	ParticipantNames []string       `json:"participant_names"`
	LastMessage      string         `json:"last_message,omitempty"`
	LastMessageAt    *time.Time     `json:"last_message_at,omitempty"`
	UnreadCount      map[string]int `json:"unread_count,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
}

// OtherParticipantName returns the display name of the participant that is
// not the viewer.
func (c *Conversation) OtherParticipantName(viewerID string) string {
	for i, p := range c.Participants {
		if p != viewerID && i < len(c.ParticipantNames) {
			return c.ParticipantNames[i]
		}
	}

	return "Unknown"
}

// Message is one entry in a conversation.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	SenderName     string    `json:"sender_name"`
	SenderRole     Role      `json:"sender_role"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
	Read           bool      `json:"read"`
}

// ChatUser is an identity addressable from the messaging screen.
type ChatUser struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	Role        Role   `json:"role"`
	CompanyName string `json:"company_name,omitempty"`
}
