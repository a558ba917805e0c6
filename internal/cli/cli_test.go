package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"negromart_seller/internal/models"
	"negromart_seller/internal/registration"
	"negromart_seller/internal/testserver"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pdf = "%PDF-1.4\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n"

type harness struct {
	t      *testing.T
	srv    *testserver.Server
	config string
	dir    string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	for _, key := range []string{"NEXT_PUBLIC_HOST", "NEXT_PUBLIC_WS_URL", "NEXT_PUBLIC_SITE_URL", "SELLER_ENV", "SELLER_STORAGE_PATH", "CONFIG_PATH"} {
		t.Setenv(key, "")
	}

	srv := testserver.New(t)
	dir := t.TempDir()
	yaml := "app:\n  env: test\n" +
		"api:\n  host: " + srv.URL + "\n  prefix: " + testserver.APIPrefix + "\n" +
		"ws:\n  url: " + srv.WSBase() + "\n" +
		"storage:\n  type: local\n  base_path: " + filepath.Join(dir, "state") + "\n"
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	return &harness{t: t, srv: srv, config: path, dir: dir}
}

func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return h.runContext(ctx, args...)
}

func (h *harness) runContext(ctx context.Context, args ...string) (string, error) {
	cmd := New()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(append([]string{"--config", h.config}, args...))
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func (h *harness) file(name, content string) string {
	path := filepath.Join(h.dir, name)
	require.NoError(h.t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func (h *harness) login() {
	h.t.Helper()
	out, err := h.run("login", "--email", "seller@example.com", "--password", "secret")
	require.NoError(h.t, err)
	require.Contains(h.t, out, "Signed in.")
}

func TestLogin_SessionSurvivesBetweenCommands(t *testing.T) {
	h := newHarness(t)
	h.login()

	out, err := h.run("whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "vendor")

	out, err = h.run("logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed out.")

	_, err = h.run("whoami")
	assert.Error(t, err)
}

func TestLogin_WithOTP(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("login", "--email", "seller@example.com", "--password", testserver.PasswordOTP, "--otp", testserver.ValidOTP)
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in.")
}

func TestLogin_BadPassword(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("login", "--email", "seller@example.com", "--password", testserver.PasswordBad)
	require.Error(t, err)
	assert.Contains(t, describe(err), "No active account")
}

func TestNotifications_ListAndReadAll(t *testing.T) {
	h := newHarness(t)
	h.login()

	out, err := h.run("notifications", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "2 unread, 3 total")

	out, err = h.run("notifications", "read-all")
	require.NoError(t, err)
	assert.Contains(t, out, "0 unread")
	assert.Equal(t, 0, h.srv.UnreadCount())
}

func TestNotifications_ShowMarksViewed(t *testing.T) {
	h := newHarness(t)
	h.login()

	out, err := h.run("notifications", "show", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "#2")

	assert.Eventually(t, func() bool {
		n, ok := h.srv.Notification(2)
		return ok && n.IsRead
	}, 2*time.Second, 10*time.Millisecond)
}

func TestNotifications_WatchPrintsCount(t *testing.T) {
	h := newHarness(t)
	h.login()

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	out, err := h.runContext(ctx, "notifications", "watch")
	require.NoError(t, err)
	assert.Contains(t, out, "Unread: 2")
}

func TestOrders_StatusTransition(t *testing.T) {
	h := newHarness(t)
	h.login()

	out, err := h.run("orders", "status", "101", string(models.OrderStatusProcessing))
	require.NoError(t, err)
	assert.Contains(t, out, "is now processing")

	_, err = h.run("orders", "status", "101", string(models.OrderStatusDelivered))
	assert.Error(t, err)
}

func TestHours_SetRejectsInvertedRange(t *testing.T) {
	h := newHarness(t)
	h.login()

	out, err := h.run("hours", "set", "tuesday=09:00-18:00", "sunday=closed")
	require.NoError(t, err)
	assert.Contains(t, out, "Tuesday")
	assert.Contains(t, out, "closed")

	_, err = h.run("hours", "set", "monday=17:00-08:00")
	require.Error(t, err)
	assert.Contains(t, describe(err), "monday.close_time")
}

func TestPayment_SetBankNormalizesName(t *testing.T) {
	h := newHarness(t)
	h.login()

	out, err := h.run("payment", "set", "--method", "bank", "--bank-name", "gcb", "--account-holder", "Ama Boateng", "--account-number", "1234567890")
	require.NoError(t, err)
	assert.Contains(t, out, "GCB Bank")

	_, err = h.run("payment", "set", "--method", "paypal")
	require.Error(t, err)
	assert.Contains(t, describe(err), "paypal_account")
}

func TestRegister_SubmitReattachesFiles(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("register", "set",
		"first_name=Ama", "last_name=Boateng", "business_name=Ama Crafts",
		"email=ama@example.com", "contact=+233241234567", "seller_type=individual",
		"about.address=12 Oxford St, Accra", "about.latitude=5.6037", "about.longitude=-0.1870",
		"payment_method.method=mobile_money", "payment_method.mobile_number=0241234567", "payment_method.mobile_provider=MTN",
	)
	require.NoError(t, err)

	out, err := h.run("register", "status")
	require.NoError(t, err)
	assert.Contains(t, out, `Step "business" is incomplete`)
	assert.Contains(t, out, registration.SlotGovernmentID)

	idPath := h.file("ghana-card.pdf", pdf)
	_, err = h.run("register", "submit", "--file", registration.SlotGovernmentID+"="+idPath)
	require.Error(t, err, "proof of address is still missing")

	billPath := h.file("bill.pdf", pdf)
	out, err = h.run("register", "submit",
		"--file", registration.SlotGovernmentID+"="+idPath,
		"--file", registration.SlotProofOfAddress+"="+billPath,
	)
	require.NoError(t, err)
	assert.Contains(t, out, "submitted")

	regs := h.srv.Registrations()
	require.Len(t, regs, 1)
	assert.Equal(t, "Ama Crafts", regs[0].Fields["business_name"])
	assert.Contains(t, regs[0].Files, registration.SlotProofOfAddress)

	out, err = h.run("register", "status")
	require.NoError(t, err)
	assert.NotContains(t, out, "Ama Crafts", "draft cleared after success")
}

func TestRegister_SetUnknownField(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("register", "set", "nickname=Ama")
	assert.Error(t, err)
}

func TestParseHours(t *testing.T) {
	row, err := parseHours("Friday=08:30-16:00")
	require.NoError(t, err)
	assert.Equal(t, models.OpeningHours{Day: 4, OpenTime: "08:30", CloseTime: "16:00"}, row)

	_, err = parseHours("funday=closed")
	assert.Error(t, err)
	_, err = parseHours("monday=0800")
	assert.Error(t, err)
}
