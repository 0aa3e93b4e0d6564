// Package i18n renders the localized display strings of a session.
package i18n

import (
	"errors"
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"golang.org/x/text/number"

	"github.com/dtroode/storefront-server/internal/model"
	"github.com/dtroode/storefront-server/internal/reducer"
)

// Message keys.
const (
	keyGreeting      = "greeting"
	keyGuest         = "guest"
	keyDeliveringTo  = "deliveringTo"
	keySubtotal      = "subtotal"
	keyCheckoutTitle = "checkoutTitle"
	keyOrderTotal    = "orderTotal"
	keyAmount        = "amount"
)

var messages = map[language.Tag]map[string]string{
	language.English: {
		keyGreeting:      "Hello, %s!",
		keyGuest:         "Guest",
		keyDeliveringTo:  "Delivering to %s",
		keySubtotal:      "Subtotal (%d items): %s",
		keyCheckoutTitle: "Checkout (%d items)",
		keyOrderTotal:    "Order Total: %s",
		keyAmount:        "$%v",
	},
	language.Spanish: {
		keyGreeting:      "Hola, %s!",
		keyGuest:         "Invitado",
		keyDeliveringTo:  "Entregando a %s",
		keySubtotal:      "Subtotal (%d artículos): %s",
		keyCheckoutTitle: "Procesar compra (%d artículos)",
		keyOrderTotal:    "Total del pedido: %s",
		keyAmount:        "%v US$",
	},
}

var ErrUnsupportedLocale = errors.New("unsupported locale")

// Strings are the display strings of one session view.
type Strings struct {
	Locale        string `json:"locale"`
	Greeting      string `json:"greeting"`
	DeliveringTo  string `json:"deliveringTo"`
	Subtotal      string `json:"subtotal"`
	CheckoutTitle string `json:"checkoutTitle"`
	OrderTotal    string `json:"orderTotal"`
}

// Localizer picks a supported language for a request and renders strings in it.
type Localizer struct {
	catalog   *catalog.Builder
	supported []language.Tag
	matcher   language.Matcher
	fallback  language.Tag
}

// NewLocalizer builds the en/es catalog. defaultLocale is used when a
// request names no supported language.
func NewLocalizer(defaultLocale string) (*Localizer, error) {
	supported := []language.Tag{language.English, language.Spanish}

	fallback, err := language.Parse(defaultLocale)
	if err != nil {
		return nil, fmt.Errorf("failed to parse default locale: %w", err)
	}
	_, idx, conf := language.NewMatcher(supported).Match(fallback)
	if conf == language.No {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLocale, defaultLocale)
	}
	fallback = supported[idx]

	b := catalog.NewBuilder(catalog.Fallback(fallback))
	for tag, msgs := range messages {
		for key, msg := range msgs {
			if err := b.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("failed to set message %s/%s: %w", tag, key, err)
			}
		}
	}

	return &Localizer{
		catalog:   b,
		supported: supported,
		matcher:   language.NewMatcher(supported),
		fallback:  fallback,
	}, nil
}

// Match resolves an Accept-Language value to a supported locale.
func (l *Localizer) Match(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return l.fallback.String()
	}
	_, idx, conf := l.matcher.Match(tags...)
	if conf == language.No {
		return l.fallback.String()
	}
	return l.supported[idx].String()
}

// Amount formats a dollar amount with two fraction digits.
func (l *Localizer) Amount(locale string, amount float64) string {
	p := l.printer(locale)
	return p.Sprintf(keyAmount, number.Decimal(amount, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// Greeting resolves the name shown in the header: the profile name, then
// the email, then the localized guest label.
func (l *Localizer) Greeting(locale string, state model.SessionState) string {
	p := l.printer(locale)

	name := state.Name
	if name == "" && state.User != nil {
		name = state.User.Email
	}
	if name == "" {
		name = p.Sprintf(keyGuest)
	}
	return p.Sprintf(keyGreeting, name)
}

// Render returns every display string for state.
func (l *Localizer) Render(locale string, state model.SessionState) Strings {
	tag := l.tag(locale)
	p := message.NewPrinter(tag, message.Catalog(l.catalog))

	count := len(state.Basket)
	total := l.Amount(tag.String(), reducer.Subtotal(state.Basket))

	return Strings{
		Locale:        tag.String(),
		Greeting:      l.Greeting(tag.String(), state),
		DeliveringTo:  p.Sprintf(keyDeliveringTo, state.UserAddress),
		Subtotal:      p.Sprintf(keySubtotal, count, total),
		CheckoutTitle: p.Sprintf(keyCheckoutTitle, count),
		OrderTotal:    p.Sprintf(keyOrderTotal, total),
	}
}

func (l *Localizer) printer(locale string) *message.Printer {
	return message.NewPrinter(l.tag(locale), message.Catalog(l.catalog))
}

func (l *Localizer) tag(locale string) language.Tag {
	for _, t := range l.supported {
		if t.String() == locale {
			return t
		}
	}
	return language.Make(l.Match(locale))
}
