package i18n

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/storefront-server/internal/model"
)

func basketOf(prices ...float64) []model.BasketEntry {
	basket := make([]model.BasketEntry, 0, len(prices))
	for i, p := range prices {
		basket = append(basket, model.BasketEntry{UniqueID: fmt.Sprintf("e%d", i), Price: p})
	}
	return basket
}

func TestNewLocalizer_UnsupportedDefault(t *testing.T) {
	_, err := NewLocalizer("ja")
	assert.ErrorIs(t, err, ErrUnsupportedLocale)

	_, err = NewLocalizer("not a tag!")
	assert.Error(t, err)
}

func TestLocalizer_Match(t *testing.T) {
	l, err := NewLocalizer("en")
	require.NoError(t, err)

	tests := []struct {
		header string
		want   string
	}{
		{header: "", want: "en"},
		{header: "es", want: "es"},
		{header: "es-MX,es;q=0.9,en;q=0.8", want: "es"},
		{header: "en-GB", want: "en"},
		{header: "fr-FR", want: "en"},
		{header: "fr;q=0.9,es;q=0.5", want: "es"},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, l.Match(tt.header))
		})
	}
}

func TestLocalizer_Greeting(t *testing.T) {
	l, err := NewLocalizer("en")
	require.NoError(t, err)

	state := model.NewSessionState()
	assert.Equal(t, "Hello, Guest!", l.Greeting("en", state))
	assert.Equal(t, "Hola, Invitado!", l.Greeting("es", state))

	state.User = &model.Identity{UID: uuid.New(), Email: "ada@example.com"}
	assert.Equal(t, "Hello, ada@example.com!", l.Greeting("en", state))

	state.Name = "Ada"
	assert.Equal(t, "Hola, Ada!", l.Greeting("es", state))
}

func TestLocalizer_Amount(t *testing.T) {
	l, err := NewLocalizer("en")
	require.NoError(t, err)

	assert.Equal(t, "$15.50", l.Amount("en", 15.5))
	assert.Equal(t, "15,50 US$", l.Amount("es", 15.5))
	assert.Equal(t, "$9.99", l.Amount("en", 9.99))
}

func TestLocalizer_RenderGolden(t *testing.T) {
	l, err := NewLocalizer("en")
	require.NoError(t, err)

	signedIn := model.NewSessionState()
	signedIn.User = &model.Identity{UID: uuid.New(), Email: "ada@example.com"}
	signedIn.Name = "Ada"
	signedIn.UserAddress = "221B Baker Street"
	signedIn.Basket = basketOf(10, 5.5)

	byEmail := model.NewSessionState()
	byEmail.User = &model.Identity{UID: uuid.New(), Email: "grace@example.com"}
	byEmail.Basket = basketOf(49.99)

	cases := []struct {
		name   string
		locale string
		state  model.SessionState
	}{
		{name: "en signed in", locale: "en", state: signedIn},
		{name: "es signed in", locale: "es", state: signedIn},
		{name: "en email fallback", locale: "en", state: byEmail},
		{name: "es-MX email fallback", locale: "es-MX", state: byEmail},
	}

	var buf bytes.Buffer
	for _, c := range cases {
		s := l.Render(c.locale, c.state)
		fmt.Fprintf(&buf, "[%s]\n", c.name)
		fmt.Fprintf(&buf, "locale: %s\n", s.Locale)
		fmt.Fprintf(&buf, "greeting: %s\n", s.Greeting)
		fmt.Fprintf(&buf, "deliveringTo: %s\n", s.DeliveringTo)
		fmt.Fprintf(&buf, "subtotal: %s\n", s.Subtotal)
		fmt.Fprintf(&buf, "checkoutTitle: %s\n", s.CheckoutTitle)
		fmt.Fprintf(&buf, "orderTotal: %s\n", s.OrderTotal)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "display_strings", buf.Bytes())
}
