package models

type Guest struct {
	ID       string `json:"_id"`
	GuestID  string `json:"guestId,omitempty"`
	Name     string `json:"name"`
	WhatsApp string `json:"whatsapp"`
	Email    string `json:"email,omitempty"`
	EventID  string `json:"eventId,omitempty"`
}

// GuestInput is the payload of add and update calls.
type GuestInput struct {
	Name     string `json:"name"`
	WhatsApp string `json:"whatsapp"`
	Email    string `json:"email"`
}

func (g Guest) Input() GuestInput {
	return GuestInput{Name: g.Name, WhatsApp: g.WhatsApp, Email: g.Email}
}

// Upload is a spreadsheet ready to be posted to the bulk endpoint.
type Upload struct {
	Name string
	Data []byte
}
