package outlook

import (
	"strings"
)

// ewsToRest swaps the EWS id alphabet for the URL-safe one REST expects.
// This mirrors the mail client's own convertToRestId utility.
var ewsToRest = strings.NewReplacer("+", "-", "/", "_")

// ItemSession implements core.MailboxSession for one host-reported
// selection. The host supplies the selected item's internal (EWS) id and
// the signed-in user's mailbox address; the session only lives for the
// duration of the command.
type ItemSession struct {
	itemID    string
	userEmail string
}

// NewItemSession creates a session around one selected item
func NewItemSession(itemID, userEmail string) *ItemSession {
	return &ItemSession{
		itemID:    itemID,
		userEmail: userEmail,
	}
}

// ItemID returns the host-internal id of the selected message
func (s *ItemSession) ItemID() string {
	return s.itemID
}

// UserEmailAddress returns the signed-in user's mailbox address
func (s *ItemSession) UserEmailAddress() string {
	return s.userEmail
}

// ConvertToRestID translates a host-internal item id into its
// REST-addressable form
func (s *ItemSession) ConvertToRestID(itemID string) string {
	return ewsToRest.Replace(itemID)
}
