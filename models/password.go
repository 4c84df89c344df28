package models

import "golang.org/x/crypto/bcrypt"

// SetPassword replaces the stored hash with a fresh salted bcrypt hash.
// The plaintext is never stored.
func (c *Customer) SetPassword(plain string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	c.Password = string(hashed)
	return nil
}

// CheckPassword reports whether candidate matches the stored hash.
func (c *Customer) CheckPassword(candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(c.Password), []byte(candidate)) == nil
}

func (m *Mechanic) SetPassword(plain string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	m.Password = string(hashed)
	return nil
}

func (m *Mechanic) CheckPassword(candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(m.Password), []byte(candidate)) == nil
}
