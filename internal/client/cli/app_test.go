package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/pharmadesk/internal/client/client"
	"github.com/dmitrijs2005/pharmadesk/internal/client/models"
	"github.com/dmitrijs2005/pharmadesk/internal/client/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fakes ----

type fakeAuth struct {
	state      services.AuthState
	user       *models.UserProfile
	loginResp  models.AuthResponse
	logoutResp models.AuthResponse

	loginCreds  []models.Credentials
	logoutCalls int
}

func (f *fakeAuth) Login(_ context.Context, creds models.Credentials) models.AuthResponse {
	f.loginCreds = append(f.loginCreds, creds)
	if f.loginResp.Success {
		f.state = services.StateAuthenticated
		f.user = f.loginResp.User()
	} else {
		f.state = services.StateError
	}
	return f.loginResp
}

func (f *fakeAuth) Logout(context.Context) models.AuthResponse {
	f.logoutCalls++
	f.state = services.StateIdle
	f.user = nil
	return f.logoutResp
}

func (f *fakeAuth) State() services.AuthState { return f.state }
func (f *fakeAuth) Loading() bool             { return false }
func (f *fakeAuth) Err() error                { return nil }
func (f *fakeAuth) User() *models.UserProfile { return f.user }
func (f *fakeAuth) Token() string             { return "" }

type fakeProducts struct {
	items []models.Product

	startCalls int
	loadCalls  int
	resetCalls int

	createRet  models.Product
	createErr  error
	lastDraft  *models.ProductDraft
	deleteErr  error
	deletedIDs []int64
}

func (f *fakeProducts) Start(context.Context) { f.startCalls++ }
func (f *fakeProducts) Load(context.Context)  { f.loadCalls++ }
func (f *fakeProducts) Reset()                { f.resetCalls++; f.items = nil }

func (f *fakeProducts) Create(_ context.Context, d models.ProductDraft) (models.Product, error) {
	f.lastDraft = &d
	if f.createErr != nil {
		return models.Product{}, f.createErr
	}
	f.items = append(f.items, f.createRet)
	return f.createRet, nil
}

func (f *fakeProducts) Delete(_ context.Context, id int64) error {
	f.deletedIDs = append(f.deletedIDs, id)
	return f.deleteErr
}

func (f *fakeProducts) Products() []models.Product { return append([]models.Product(nil), f.items...) }

func (f *fakeProducts) Find(id int64) (models.Product, bool) {
	for _, p := range f.items {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

func (f *fakeProducts) Loading() bool { return false }
func (f *fakeProducts) Err() error    { return nil }

func (f *fakeProducts) Summary() (int, float64) {
	var total float64
	for _, p := range f.items {
		total += float64(p.Price)
	}
	return len(f.items), models.RoundPrice(total)
}

// ---- helpers ----

// stubInputs feeds answers to getSimpleText in order and returns password
// from getPassword.
func stubInputs(t *testing.T, password string, answers ...string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(answers) == 0 {
			return "", io.EOF
		}
		a := answers[0]
		answers = answers[1:]
		return a, nil
	}
	getPassword = func(_ *bufio.Reader, _ io.Writer) ([]byte, error) { return []byte(password), nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

func stubConfirm(t *testing.T, answer bool) *int {
	t.Helper()
	calls := 0
	orig := confirm
	confirm = func(_ *bufio.Reader, _ string, _ io.Writer) bool { calls++; return answer }
	t.Cleanup(func() { confirm = orig })
	return &calls
}

func newTestApp(auth *fakeAuth, products *fakeProducts) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return newApp(auth, products, strings.NewReader(""), &out, nil), &out
}

func sample() []models.Product {
	return []models.Product{
		{ID: 7, Name: "Aspirin", Description: "Pain relief", Price: 10},
		{ID: 9, Name: "Ibuprofen", Description: "Anti-inflammatory", Price: 5.5},
	}
}

// ---- tests ----

func TestLogin_SuccessStartsProductFlow(t *testing.T) {
	stubInputs(t, "secret", " ana@example.com ")
	auth := &fakeAuth{state: services.StateIdle, loginResp: models.AuthResponse{
		Success: true,
		Data: &models.AuthData{
			Session: models.AuthSession{AccessToken: "tok"},
			User:    &models.UserProfile{Name: "Ana", Email: "ana@example.com"},
		},
	}}
	products := &fakeProducts{items: sample()}
	a, out := newTestApp(auth, products)

	require.NoError(t, a.Login(context.Background()))

	require.Len(t, auth.loginCreds, 1)
	assert.Equal(t, models.Credentials{Email: "ana@example.com", Password: "secret"}, auth.loginCreds[0])
	assert.Equal(t, 1, products.startCalls)
	assert.Contains(t, out.String(), "Welcome, Ana!")
	assert.Contains(t, out.String(), "Aspirin")
}

func TestLogin_InvalidFormSendsNothing(t *testing.T) {
	stubInputs(t, "", "not-an-email")
	auth := &fakeAuth{state: services.StateIdle}
	a, out := newTestApp(auth, &fakeProducts{})

	require.Error(t, a.Login(context.Background()))

	assert.Empty(t, auth.loginCreds)
	assert.Contains(t, out.String(), "email: Enter a valid email address")
	assert.Contains(t, out.String(), "password: Password is required")
}

func TestLogin_FailurePrintsServerMessage(t *testing.T) {
	stubInputs(t, "wrong", "ana@example.com")
	auth := &fakeAuth{state: services.StateIdle, loginResp: models.Failure("Invalid credentials")}
	products := &fakeProducts{}
	a, out := newTestApp(auth, products)

	require.Error(t, a.Login(context.Background()))

	assert.Contains(t, out.String(), "Login failed: Invalid credentials")
	assert.Zero(t, products.startCalls)
}

func TestLogout_ResetsProducts(t *testing.T) {
	auth := &fakeAuth{state: services.StateAuthenticated, logoutResp: models.AuthResponse{Success: true}}
	products := &fakeProducts{items: sample()}
	a, out := newTestApp(auth, products)

	require.NoError(t, a.Logout(context.Background()))

	assert.Equal(t, 1, auth.logoutCalls)
	assert.Equal(t, 1, products.resetCalls)
	assert.Contains(t, out.String(), "Logged out.")
	assert.False(t, a.isLoggedIn())
}

func TestLogout_ServerFailureStillLogsOutLocally(t *testing.T) {
	auth := &fakeAuth{state: services.StateAuthenticated, logoutResp: models.Failure("db down")}
	products := &fakeProducts{items: sample()}
	a, out := newTestApp(auth, products)

	require.Error(t, a.Logout(context.Background()))

	assert.Equal(t, 1, products.resetCalls)
	assert.Contains(t, out.String(), "Logged out locally (server said: db down)")
}

func TestList_Render(t *testing.T) {
	products := &fakeProducts{}
	a, out := newTestApp(&fakeAuth{}, products)

	require.NoError(t, a.List(context.Background()))
	assert.Equal(t, "No products yet. Use 'add' to create one.\n", out.String())

	out.Reset()
	products.items = sample()
	require.NoError(t, a.List(context.Background()))

	text := out.String()
	assert.Contains(t, text, "DESCRIPTION")
	assert.Contains(t, text, "Pain relief")
	assert.Contains(t, text, "10.00 USD")
	assert.Contains(t, text, "5.50 USD")
	assert.Contains(t, text, "Total: 2 product(s), 15.50 USD")
}

func TestRefresh_ReloadsThenLists(t *testing.T) {
	products := &fakeProducts{items: sample()}
	a, out := newTestApp(&fakeAuth{}, products)

	require.NoError(t, a.Refresh(context.Background()))

	assert.Equal(t, 1, products.loadCalls)
	assert.Contains(t, out.String(), "Ibuprofen")
}

func TestAdd_SendsValidatedDraft(t *testing.T) {
	stubInputs(t, "", " Aspirin ", "Pain relief", "9.999")
	products := &fakeProducts{createRet: models.Product{ID: 42, Name: "Aspirin", Description: "Pain relief", Price: 10}}
	a, out := newTestApp(&fakeAuth{}, products)

	require.NoError(t, a.Add(context.Background()))

	require.NotNil(t, products.lastDraft)
	assert.Equal(t, models.ProductDraft{Name: "Aspirin", Description: "Pain relief", Price: 10}, *products.lastDraft)
	assert.Contains(t, out.String(), "Added #42 Aspirin (10.00 USD)")
}

func TestAdd_InvalidInputSendsNothing(t *testing.T) {
	stubInputs(t, "", "", "Pain relief", "-1")
	products := &fakeProducts{}
	a, out := newTestApp(&fakeAuth{}, products)

	require.Error(t, a.Add(context.Background()))

	assert.Nil(t, products.lastDraft)
	assert.Contains(t, out.String(), "name: Name is required")
	assert.Contains(t, out.String(), "price: Price must be a number greater than 0")
}

func TestAdd_ServerErrorIsReported(t *testing.T) {
	stubInputs(t, "", "A", "B", "1")
	products := &fakeProducts{createErr: &client.APIError{StatusCode: 500, Message: "db down"}}
	a, out := newTestApp(&fakeAuth{}, products)

	require.Error(t, a.Add(context.Background()))
	assert.Contains(t, out.String(), "Could not add product: db down")
}

func TestDelete(t *testing.T) {
	t.Run("confirmed", func(t *testing.T) {
		calls := stubConfirm(t, true)
		products := &fakeProducts{items: sample()}
		a, out := newTestApp(&fakeAuth{}, products)

		require.NoError(t, a.Delete(context.Background(), []string{"9"}))

		assert.Equal(t, 1, *calls)
		assert.Equal(t, []int64{9}, products.deletedIDs)
		assert.Contains(t, out.String(), "Deleted #9 Ibuprofen")
	})

	t.Run("declined", func(t *testing.T) {
		stubConfirm(t, false)
		products := &fakeProducts{items: sample()}
		a, out := newTestApp(&fakeAuth{}, products)

		require.NoError(t, a.Delete(context.Background(), []string{"9"}))

		assert.Empty(t, products.deletedIDs)
		assert.Contains(t, out.String(), "Cancelled.")
	})

	t.Run("unknown id", func(t *testing.T) {
		calls := stubConfirm(t, true)
		products := &fakeProducts{items: sample()}
		a, _ := newTestApp(&fakeAuth{}, products)

		require.Error(t, a.Delete(context.Background(), []string{"100"}))
		assert.Zero(t, *calls)
		assert.Empty(t, products.deletedIDs)
	})

	t.Run("bad arguments", func(t *testing.T) {
		a, out := newTestApp(&fakeAuth{}, &fakeProducts{})

		require.Error(t, a.Delete(context.Background(), nil))
		require.Error(t, a.Delete(context.Background(), []string{"abc"}))
		assert.Contains(t, out.String(), "Usage: delete <id>")
		assert.Contains(t, out.String(), "Invalid id: abc")
	})

	t.Run("server error", func(t *testing.T) {
		stubConfirm(t, true)
		products := &fakeProducts{items: sample(), deleteErr: errors.New("boom")}
		a, out := newTestApp(&fakeAuth{}, products)

		require.Error(t, a.Delete(context.Background(), []string{"7"}))
		assert.Contains(t, out.String(), "Could not delete product: boom")
	})
}

func TestWhoAmI(t *testing.T) {
	auth := &fakeAuth{state: services.StateAuthenticated, user: &models.UserProfile{Name: "Ana", Email: "ana@example.com"}}
	a, out := newTestApp(auth, &fakeProducts{})

	require.NoError(t, a.WhoAmI(context.Background()))
	assert.Equal(t, "Ana <ana@example.com>\n", out.String())
	assert.Equal(t, "Ana", a.status())
}

func TestRun_RestoredSessionOpensProductsScreen(t *testing.T) {
	capturePrintln(t)
	auth := &fakeAuth{state: services.StateAuthenticated, user: &models.UserProfile{Email: "a@b.c"}}
	products := &fakeProducts{items: sample()}
	a, out := newTestApp(auth, products)

	a.Run(context.Background())

	assert.Equal(t, 1, products.startCalls)
	assert.Contains(t, out.String(), "Aspirin")
}

func TestRun_GuestStaysOnLoginScreen(t *testing.T) {
	capturePrintln(t)
	products := &fakeProducts{}
	a, out := newTestApp(&fakeAuth{state: services.StateIdle}, products)

	a.Run(context.Background())

	assert.Zero(t, products.startCalls)
	assert.Empty(t, out.String())
	assert.Equal(t, "guest", a.status())
}
