package form

import (
	"testing"

	"github.com/conorfennell/flipmatch/internal/rating"
)

func fillValid(f *Form) {
	f.Input(Name, "Jonas")
	f.Input(Surname, "Jonaitis")
	f.Input(Email, "jonas@example.lt")
	f.Input(Phone, "860012345")
	f.Input(Address, "  Gedimino pr. 1  ")
}

func TestFormPhoneInputIsFormatted(t *testing.T) {
	f := New(NewValidator())

	res := f.Input(Phone, "8600")
	if res.Valid {
		t.Error("Expected partial phone to be invalid")
	}
	if res.Message != phoneMessage {
		t.Errorf("Expected '%s', but got '%s'", phoneMessage, res.Message)
	}
	if f.Value(Phone) != "+370 600" {
		t.Errorf("Expected stored value '+370 600', but got '%s'", f.Value(Phone))
	}

	res = f.Input(Phone, f.Value(Phone)+"12345")
	if !res.Valid {
		t.Errorf("Expected completed phone to be valid: %s", res.Message)
	}

	cleared := f.Input(Phone, "")
	if cleared.Message != phoneMessage {
		t.Errorf("Expected pattern message on cleared phone, but got '%s'", cleared.Message)
	}
	if blur := f.Blur(Phone); blur.Message != "Telefono numeris negali būti tuščias." {
		t.Errorf("Expected empty message on blur, but got '%s'", blur.Message)
	}
}

func TestFormValid(t *testing.T) {
	f := New(NewValidator())
	if f.Valid() {
		t.Fatal("Expected an empty form to be invalid")
	}

	fillValid(f)
	if !f.Valid() {
		t.Fatalf("Expected a filled form to be valid, errors: %+v", f.Errors())
	}

	f.Input(Email, "broken")
	if f.Valid() {
		t.Error("Expected form with a broken email to be invalid")
	}
}

func TestFormSubmit(t *testing.T) {
	f := New(NewValidator())
	fillValid(f)
	for i, v := range []string{"4", "5", "3"} {
		if _, err := f.SetRating(rating.Names[i], v); err != nil {
			t.Fatalf("SetRating() returned an unexpected error: %v", err)
		}
	}

	summary, failed := f.Submit()
	if failed != nil {
		t.Fatalf("Expected no failures, but got %+v", failed)
	}
	if summary.Average != "4.0" {
		t.Errorf("Expected average '4.0', but got '%s'", summary.Average)
	}
	if summary.Fields["address"] != "Gedimino pr. 1" {
		t.Errorf("Expected trimmed address, but got '%s'", summary.Fields["address"])
	}
	if summary.Fields["phone"] != "+370 600 12345" {
		t.Errorf("Expected formatted phone, but got '%s'", summary.Fields["phone"])
	}
	if summary.Fields["rating2"] != "5" {
		t.Errorf("Expected rating2 '5', but got '%s'", summary.Fields["rating2"])
	}

	t.Run("form is cleared", func(t *testing.T) {
		for _, field := range Fields {
			if f.Value(field) != "" {
				t.Errorf("Expected %s to be cleared, but got '%s'", field, f.Value(field))
			}
		}
		for i, r := range f.Ratings() {
			if r != rating.Default {
				t.Errorf("Expected rating %d reset to %d, but got %d", i, rating.Default, r)
			}
		}
		if f.Valid() {
			t.Error("Expected submit to be disabled after clearing")
		}
	})
}

func TestFormSubmitFailure(t *testing.T) {
	f := New(NewValidator())
	fillValid(f)
	f.Input(Surname, "")
	f.Input(Phone, "370600123")

	summary, failed := f.Submit()
	if summary != nil {
		t.Fatal("Expected no summary for an invalid form")
	}
	if len(failed) != 2 {
		t.Fatalf("Expected 2 failures, but got %d: %+v", len(failed), failed)
	}
	if failed[0].Field != Surname || failed[1].Field != Phone {
		t.Errorf("Unexpected failing fields: %s, %s", failed[0].Field, failed[1].Field)
	}
	if f.Value(Name) != "Jonas" {
		t.Error("Expected values to be kept after a failed submit")
	}
}

func TestFormSetRating(t *testing.T) {
	f := New(NewValidator())

	if _, err := f.SetRating("rating9", "3"); err == nil {
		t.Error("Expected an error for an unknown slider")
	}
	if _, err := f.SetRating("rating1", "9"); err == nil {
		t.Error("Expected an error for an out-of-range value")
	}
	r, err := f.SetRating("rating1", "2")
	if err != nil || r != 2 {
		t.Errorf("Expected readout 2, but got %d (err %v)", r, err)
	}
}
