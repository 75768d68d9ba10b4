package domain

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User - основная доменная сущность пользователя (студента).
// ID назначается хранилищем документов при создании.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Department   string
	StudentID    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicProfile — то, что видят другие пользователи.
type PublicProfile struct {
	ID         string
	Name       string
	Department string
}

// Claims - это данные, которые мы "зашиваем" в JWT токен.
type Claims struct {
	UserID string
	Email  string
}

// NewUser создает нового пользователя. Хэширование пароля происходит здесь.
func NewUser(email, password, name, department, studentID string) (*User, error) {
	// bcrypt.DefaultCost - это хороший баланс между скоростью и безопасностью.
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &User{
		Email:        email,
		PasswordHash: string(hashedPassword),
		Name:         name,
		Department:   department,
		StudentID:    studentID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// CheckPassword сравнивает предоставленный пароль с хэшем, хранящимся у пользователя.
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// SetPassword перехэширует пароль (используется при обновлении профиля).
func (u *User) SetPassword(password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashed)
	return nil
}

func (u *User) Public() PublicProfile {
	return PublicProfile{ID: u.ID, Name: u.Name, Department: u.Department}
}

// UserPatch — частичное обновление профиля. nil — не менять.
type UserPatch struct {
	Name       *string
	Department *string
	Password   *string
}
