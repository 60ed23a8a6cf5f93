// Package render prints backend records as aligned tables on stdout.
package render

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/gosuri/uitable"
	"github.com/spf13/cast"

	"locatrack.io/locatrack/internal/backend"
	"locatrack.io/locatrack/internal/messaging"
	"locatrack.io/locatrack/internal/track"
)

const maxColWidth = 60

func newTable() *uitable.Table {
	table := uitable.New()
	table.MaxColWidth = maxColWidth
	table.Wrap = true

	return table
}

// Vehicles prints the fleet list.
func Vehicles(w io.Writer, vehicles []backend.Vehicle) {
	table := newTable()
	table.AddRow("PLATE", "MAKE", "MODEL", "YEAR", "STATUS", "DAILY RATE", "TRACKER")

	for _, v := range vehicles {
		tracker := "-"
		if v.IMEI != "" {
			tracker = v.IMEI
		}
		table.AddRow(v.PlateNumber, v.Make, v.Model, v.Year, v.Status, fmt.Sprintf("%.2f", v.DailyRate), tracker)
	}

	fmt.Fprintln(w, table)
}

// TrackedObjects prints the live GPS snapshot with per-device status.
func TrackedObjects(w io.Writer, objects []backend.TrackedObject, now time.Time) {
	table := newTable()
	table.AddRow("NAME", "PLATE", "STATUS", "SPEED", "POSITION", "UPDATED")

	for i := range objects {
		obj := &objects[i]

		updated := "never"
		if ts, ok := obj.LastReport(); ok {
			updated = track.TimeSinceUpdate(ts, now)
		}

		table.AddRow(
			obj.Name,
			obj.PlateNumber,
			string(track.Classify(obj, now)),
			fmt.Sprintf("%.0f km/h", obj.Speed),
			fmt.Sprintf("%.5f, %.5f", obj.Lat, obj.Lng),
			updated,
		)
	}

	fmt.Fprintln(w, table)
}

// TrackedObjectDetail prints one device's full telemetry, including the
// provider's free-form params.
func TrackedObjectDetail(w io.Writer, obj *backend.TrackedObject, now time.Time) {
	table := newTable()
	table.AddRow("IMEI:", obj.IMEI)
	table.AddRow("Name:", obj.Name)
	if obj.PlateNumber != "" {
		table.AddRow("Plate:", obj.PlateNumber)
	}
	table.AddRow("Status:", string(track.Classify(obj, now)))
	table.AddRow("Speed:", fmt.Sprintf("%.0f km/h", obj.Speed))
	table.AddRow("Position:", fmt.Sprintf("%.5f, %.5f", obj.Lat, obj.Lng))
	table.AddRow("Heading:", fmt.Sprintf("%.0f°", obj.Angle))
	table.AddRow("Odometer:", fmt.Sprintf("%.1f km", obj.Odometer))
	if ts, ok := obj.LastReport(); ok {
		table.AddRow("Updated:", track.TimeSinceUpdate(ts, now))
	}

	// Provider params are free-form; values arrive as strings, numbers or
	// bools depending on the device model.
	keys := make([]string, 0, len(obj.Params))
	for k := range obj.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		table.AddRow(k+":", cast.ToString(obj.Params[k]))
	}

	fmt.Fprintln(w, table)
}

// Conversations prints the viewer's inbox.
func Conversations(w io.Writer, conversations []backend.Conversation, viewerID string) {
	table := newTable()
	table.AddRow("ID", "WITH", "LAST MESSAGE", "WHEN", "UNREAD")

	for i := range conversations {
		conv := &conversations[i]

		when := "-"
		if conv.LastMessageAt != nil {
			when = conv.LastMessageAt.Local().Format("02 Jan 15:04")
		}

		unread := ""
		if n := messaging.UnreadCountFor(conv, viewerID); n > 0 {
			unread = cast.ToString(n)
		}

		table.AddRow(conv.ID, conv.OtherParticipantName(viewerID), conv.LastMessage, when, unread)
	}

	fmt.Fprintln(w, table)
}

// Messages prints a conversation thread in creation order. The viewer's
// own messages are labelled "me".
func Messages(w io.Writer, messages []backend.Message, viewerID string) {
	table := newTable()

	for i := range messages {
		msg := &messages[i]

		from := msg.SenderName
		if msg.SenderID == viewerID {
			from = "me"
		}

		table.AddRow(msg.CreatedAt.Local().Format("02 Jan 15:04"), from, msg.Content)
	}

	fmt.Fprintln(w, table)
}

// ChatUsers prints the identities a conversation can be started with.
func ChatUsers(w io.Writer, users []backend.ChatUser) {
	table := newTable()
	table.AddRow("ID", "NAME", "EMAIL", "ROLE", "COMPANY")

	for _, u := range users {
		table.AddRow(u.ID, u.FullName, u.Email, string(u.Role), u.CompanyName)
	}

	fmt.Fprintln(w, table)
}

// Identity prints the authenticated account.
func Identity(w io.Writer, user *backend.User) {
	table := newTable()
	table.AddRow("Name:", user.FullName)
	table.AddRow("Email:", user.Email)
	table.AddRow("Role:", string(user.Role))
	if user.CompanyName != "" {
		table.AddRow("Company:", user.CompanyName)
	}
	if user.Phone != "" {
		table.AddRow("Phone:", user.Phone)
	}

	fmt.Fprintln(w, table)
}
