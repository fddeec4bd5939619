package integration

import "testing"

// TestRegistration verifies that a new user can register and receives a
// token in the response.
func TestRegistration(t *testing.T) {
	skipIfNotRunning(t)

	email := uniqueEmail("register")
	body := map[string]interface{}{
		"email":      email,
		"password":   "TestPass123!",
		"first_name": "Integration",
		"last_name":  "Test",
	}

	status, data := httpPost(t, apiURL()+"/api/v1/auth/register", body)
	requireStatus(t, status, 201)

	if extractField(data, "data.user.id") == nil {
		t.Fatal("expected data.user.id in registration response")
	}
	if extractField(data, "data.token") == nil {
		t.Fatal("expected data.token in registration response")
	}
}

// TestDuplicateRegistration verifies that registering the same email twice
// is rejected with a conflict.
func TestDuplicateRegistration(t *testing.T) {
	skipIfNotRunning(t)

	email, _ := registerAndLogin(t, "duplicate")

	body := map[string]interface{}{
		"email":      email,
		"password":   "TestPass123!",
		"first_name": "Integration",
		"last_name":  "Test",
	}
	status, _ := httpPost(t, apiURL()+"/api/v1/auth/register", body)
	requireStatus(t, status, 409)
}

// TestLoginAndProfile verifies a registered user can log in and fetch its
// own profile with the returned token.
func TestLoginAndProfile(t *testing.T) {
	skipIfNotRunning(t)

	email, _ := registerAndLogin(t, "login")

	status, data := httpPost(t, apiURL()+"/api/v1/auth/login", map[string]interface{}{
		"email":    email,
		"password": "TestPass123!",
	})
	requireStatus(t, status, 200)

	token, _ := extractField(data, "data.token").(string)
	if token == "" {
		t.Fatal("expected data.token in login response")
	}

	status, data = httpGetWithAuth(t, apiURL()+"/api/v1/auth/profile", token)
	requireStatus(t, status, 200)
	if got, _ := extractField(data, "data.email").(string); got != email {
		t.Fatalf("expected profile email %s, got %q", email, got)
	}
}

// TestLoginWrongPassword verifies a bad password is rejected without
// revealing whether the account exists.
func TestLoginWrongPassword(t *testing.T) {
	skipIfNotRunning(t)

	email, _ := registerAndLogin(t, "badpass")

	status, _ := httpPost(t, apiURL()+"/api/v1/auth/login", map[string]interface{}{
		"email":    email,
		"password": "WrongPass123!",
	})
	requireStatus(t, status, 401)
}

// TestProfileRequiresToken verifies the profile endpoint rejects anonymous
// requests.
func TestProfileRequiresToken(t *testing.T) {
	skipIfNotRunning(t)

	status, _ := httpGet(t, apiURL()+"/api/v1/auth/profile")
	requireStatus(t, status, 401)
}
