package address

import "github.com/angelmondragon/mallkv/pkg/validate"

// Address is a shipping address in one owner's book.
type Address struct {
	ID        string `json:"id"`
	UserID    string `json:"userId,omitempty"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	IsDefault bool   `json:"isDefault"`
}

// Draft is the input for a new address.
type Draft struct {
	Name      string `json:"name" validate:"required,max=64"`
	Phone     string `json:"phone" validate:"required,max=32"`
	Address   string `json:"address" validate:"required,max=256"`
	IsDefault bool   `json:"isDefault"`
}

func (d Draft) sanitized() Draft {
	d.Name = validate.Sanitize(d.Name, 0)
	d.Phone = validate.Sanitize(d.Phone, 0)
	d.Address = validate.Sanitize(d.Address, 0)
	return d
}

// Patch changes selected fields of an address. Nil fields are left untouched.
type Patch struct {
	Name      *string `json:"name" validate:"omitnil,min=1,max=64"`
	Phone     *string `json:"phone" validate:"omitnil,min=1,max=32"`
	Address   *string `json:"address" validate:"omitnil,min=1,max=256"`
	IsDefault *bool   `json:"isDefault"`
}

func (p Patch) sanitized() Patch {
	for _, field := range []**string{&p.Name, &p.Phone, &p.Address} {
		if *field != nil {
			value := validate.Sanitize(**field, 0)
			*field = &value
		}
	}
	return p
}

func (p Patch) applyTo(a *Address) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Phone != nil {
		a.Phone = *p.Phone
	}
	if p.Address != nil {
		a.Address = *p.Address
	}
	if p.IsDefault != nil {
		a.IsDefault = *p.IsDefault
	}
}
