// Package forms реализует разбор и валидацию HTML-форм приложения.
//
// Каждая форма описана структурой с тегами validator; нарушения собираются
// в упорядоченный список FieldError и отображаются обратно в форме.
// Текстовые поля обрезаются по краям, имена и username дополнительно
// экранируются для последующего безопасного вывода.
package forms

import (
	"fmt"
	"html"
	"net/http"
	"strings"

	"github.com/go-playground/validator"
)

var validate = validator.New()

// FieldError описывает одно нарушение валидации: имя поля формы
// и сообщение для пользователя.
type FieldError struct {
	Field   string
	Message string
}

// formNames сопоставляет поля структур с именами полей HTML-форм.
var formNames = map[string]string{
	"FirstName":       "fname",
	"LastName":        "lname",
	"Username":        "username",
	"Password":        "password",
	"ConfirmPassword": "cpassword",
	"Title":           "title",
	"Text":            "text",
}

// labels сопоставляет поля структур с человекочитаемыми названиями.
var labels = map[string]string{
	"FirstName":       "First name",
	"LastName":        "Last name",
	"Username":        "Username",
	"Password":        "Password",
	"ConfirmPassword": "Confirm password",
	"Title":           "Title",
	"Text":            "Message text",
}

// SignUpForm — поля формы регистрации.
type SignUpForm struct {
	FirstName       string `validate:"required,alpha"`
	LastName        string `validate:"required,alpha"`
	Username        string `validate:"required,alphanum"`
	Password        string `validate:"required"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
}

// LoginForm — поля формы входа.
type LoginForm struct {
	Username string `validate:"required,alphanum"`
	Password string `validate:"required"`
}

// JoinForm — поле формы вступления в клуб.
type JoinForm struct {
	Password string `validate:"required"`
}

// MessageForm — поля формы нового сообщения.
type MessageForm struct {
	Title string `validate:"required"`
	Text  string `validate:"required"`
}

// ParseSignUp читает форму регистрации из запроса,
// обрезая и экранируя имена и username.
func ParseSignUp(r *http.Request) *SignUpForm {
	return &SignUpForm{
		FirstName:       sanitize(r.PostFormValue("fname")),
		LastName:        sanitize(r.PostFormValue("lname")),
		Username:        sanitize(r.PostFormValue("username")),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("cpassword"),
	}
}

// ParseLogin читает форму входа из запроса.
func ParseLogin(r *http.Request) *LoginForm {
	return &LoginForm{
		Username: sanitize(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
	}
}

// ParseJoin читает форму вступления в клуб из запроса.
func ParseJoin(r *http.Request) *JoinForm {
	return &JoinForm{
		Password: strings.TrimSpace(r.PostFormValue("password")),
	}
}

// ParseMessage читает форму нового сообщения из запроса.
func ParseMessage(r *http.Request) *MessageForm {
	return &MessageForm{
		Title: strings.TrimSpace(r.PostFormValue("title")),
		Text:  strings.TrimSpace(r.PostFormValue("text")),
	}
}

// Validate проверяет форму регистрации и возвращает список нарушений.
func (f *SignUpForm) Validate() []FieldError {
	return collect(validate.Struct(f))
}

// Validate проверяет форму входа и возвращает список нарушений.
func (f *LoginForm) Validate() []FieldError {
	return collect(validate.Struct(f))
}

// Validate проверяет форму вступления в клуб и возвращает список нарушений.
func (f *JoinForm) Validate() []FieldError {
	return collect(validate.Struct(f))
}

// Validate проверяет форму сообщения и возвращает список нарушений.
func (f *MessageForm) Validate() []FieldError {
	return collect(validate.Struct(f))
}

func sanitize(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}

// collect преобразует ошибки validator в упорядоченный список FieldError.
// Порядок соответствует порядку полей структуры формы.
func collect(err error) []FieldError {
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "", Message: "invalid form submission"}}
	}

	var result []FieldError
	for _, fe := range verrs {
		result = append(result, FieldError{
			Field:   formNames[fe.Field()],
			Message: message(fe.Field(), fe.ActualTag()),
		})
	}
	return result
}

func message(field, tag string) string {
	label := labels[field]
	switch tag {
	case "required":
		if field == "ConfirmPassword" {
			return "Please confirm your password"
		}
		return fmt.Sprintf("%s is required", label)
	case "alpha":
		return fmt.Sprintf("%s should contain only letters", label)
	case "alphanum":
		return fmt.Sprintf("%s should be alphanumeric", label)
	case "eqfield":
		return "Passwords do not match"
	default:
		return fmt.Sprintf("%s is not valid", label)
	}
}
