package utility

import "golang.org/x/crypto/bcrypt"

// HashPassword is used to encrypt the password before it is stored in the DB.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// VerifyPassword compares a provided password with the stored hash.
func VerifyPassword(providedPassword string, hashedPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(providedPassword)) == nil
}
