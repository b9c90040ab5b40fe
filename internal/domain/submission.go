package domain

// Submission is one accepted contact form entry. It lives only long enough
// to be rendered.
type Submission struct {
	Name    string `validate:"required,personname"`
	Surname string `validate:"required,personname"`
	Email   string `validate:"required,contactemail"`
	Phone   string `validate:"required,ltphone"`
	Address string `validate:"required"`
	Rating1 int    `validate:"min=1,max=5"`
	Rating2 int    `validate:"min=1,max=5"`
	Rating3 int    `validate:"min=1,max=5"`
}

// Fields returns the submission as the flat key/value mapping the form
// collected it from.
func (s Submission) Fields() map[string]string {
	return map[string]string{
		"name":    s.Name,
		"surname": s.Surname,
		"email":   s.Email,
		"phone":   s.Phone,
		"address": s.Address,
	}
}
