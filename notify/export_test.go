package notify

func (m *SMTPMailer) Message(to, subject, body string) []byte {
	return m.message(to, subject, body)
}
