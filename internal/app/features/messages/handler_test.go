package messages_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/helpinghands/volunteerhub/internal/app/features/messages"
	activitystore "github.com/helpinghands/volunteerhub/internal/app/store/activities"
	messagestore "github.com/helpinghands/volunteerhub/internal/app/store/messages"
	notificationstore "github.com/helpinghands/volunteerhub/internal/app/store/notifications"
	userstore "github.com/helpinghands/volunteerhub/internal/app/store/users"
	"github.com/helpinghands/volunteerhub/internal/app/system/notify"
	"github.com/helpinghands/volunteerhub/internal/app/system/roles"
	"github.com/helpinghands/volunteerhub/internal/domain/models"
	"github.com/helpinghands/volunteerhub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*messages.Handler, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()

	store := messagestore.New(db)
	users := userstore.New(db)
	activities := activitystore.New(db, activitystore.DeleteBlock)
	dispatcher := notify.New(notificationstore.New(db), logger)

	h := messages.NewHandler(db, store, users, activities, dispatcher, logger)
	return h, db
}

func TestHandleSend(t *testing.T) {
	h, db := newTestHandler(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := f.CreateOrgAdmin(ctx, "Org Admin", "admin@example.com")
	activity := f.CreateActivity(ctx, admin.ID, "Park Cleanup", time.Now().Add(48*time.Hour))
	vol := f.CreateVolunteer(ctx, "Vol One", "vol1@example.com")

	body := map[string]string{
		"activity_id":    activity.ID.Hex(),
		"counterpart_id": admin.ID.Hex(),
		"text":           "when should I arrive?",
	}
	req := testutil.NewJSONRequest(t, "POST", "/messages", body, testutil.AsTestUser(vol))
	rec := httptest.NewRecorder()

	h.HandleSend(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d (%s)", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var msg models.Message
	testutil.DecodeJSON(t, rec.Body, &msg)
	if msg.Text != "when should I arrive?" {
		t.Errorf("text: got %q, want %q", msg.Text, "when should I arrive?")
	}
	if msg.SenderID != vol.ID || msg.CounterpartID != admin.ID {
		t.Error("expected sender and counterpart to be recorded")
	}

	// The counterpart is notified under their real role.
	feed, err := notificationstore.New(db).ListForRecipient(ctx, admin.ID, string(roles.OrgAdmin), 0)
	if err != nil {
		t.Fatalf("ListForRecipient failed: %v", err)
	}
	if len(feed) != 1 {
		t.Errorf("counterpart notifications: got %d, want 1", len(feed))
	}
}

func TestHandleSend_EmptyText(t *testing.T) {
	h, db := newTestHandler(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := f.CreateOrgAdmin(ctx, "Org Admin", "admin@example.com")
	activity := f.CreateActivity(ctx, admin.ID, "Park Cleanup", time.Now().Add(48*time.Hour))
	vol := f.CreateVolunteer(ctx, "Vol One", "vol1@example.com")

	body := map[string]string{
		"activity_id":    activity.ID.Hex(),
		"counterpart_id": admin.ID.Hex(),
		"text":           "  ",
	}
	req := testutil.NewJSONRequest(t, "POST", "/messages", body, testutil.AsTestUser(vol))
	rec := httptest.NewRecorder()

	h.HandleSend(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
}

func TestHandleSend_ToSelf(t *testing.T) {
	h, db := newTestHandler(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := f.CreateOrgAdmin(ctx, "Org Admin", "admin@example.com")
	activity := f.CreateActivity(ctx, admin.ID, "Park Cleanup", time.Now().Add(48*time.Hour))
	vol := f.CreateVolunteer(ctx, "Vol One", "vol1@example.com")

	body := map[string]string{
		"activity_id":    activity.ID.Hex(),
		"counterpart_id": vol.ID.Hex(),
		"text":           "hello me",
	}
	req := testutil.NewJSONRequest(t, "POST", "/messages", body, testutil.AsTestUser(vol))
	rec := httptest.NewRecorder()

	h.HandleSend(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
}

func TestServeConversation(t *testing.T) {
	h, db := newTestHandler(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := f.CreateOrgAdmin(ctx, "Org Admin", "admin@example.com")
	activity := f.CreateActivity(ctx, admin.ID, "Park Cleanup", time.Now().Add(48*time.Hour))
	vol := f.CreateVolunteer(ctx, "Vol One", "vol1@example.com")

	f.CreateMessage(ctx, activity.ID, vol, admin.ID, "hi there")
	f.CreateMessage(ctx, activity.ID, admin, vol.ID, "hello")

	target := "/messages/activity/" + activity.ID.Hex() + "?counterpart=" + admin.ID.Hex()
	req := testutil.NewAuthenticatedRequest("GET", target, testutil.AsTestUser(vol))
	req = testutil.WithChiURLParam(req, "id", activity.ID.Hex())
	rec := httptest.NewRecorder()

	h.ServeConversation(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (%s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp struct {
		Messages []models.Message `json:"messages"`
	}
	testutil.DecodeJSON(t, rec.Body, &resp)
	if len(resp.Messages) != 2 {
		t.Errorf("messages: got %d, want 2", len(resp.Messages))
	}
}

func TestServeConversations(t *testing.T) {
	h, db := newTestHandler(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := f.CreateOrgAdmin(ctx, "Org Admin", "admin@example.com")
	activity := f.CreateActivity(ctx, admin.ID, "Park Cleanup", time.Now().Add(48*time.Hour))
	vol1 := f.CreateVolunteer(ctx, "Vol One", "vol1@example.com")
	vol2 := f.CreateVolunteer(ctx, "Vol Two", "vol2@example.com")

	f.CreateMessage(ctx, activity.ID, vol1, admin.ID, "hi")
	f.CreateMessage(ctx, activity.ID, vol2, admin.ID, "hello")

	req := testutil.NewAuthenticatedRequest("GET", "/messages/activity/"+activity.ID.Hex()+"/conversations", testutil.AsTestUser(admin))
	req = testutil.WithChiURLParam(req, "id", activity.ID.Hex())
	rec := httptest.NewRecorder()

	h.ServeConversations(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (%s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp struct {
		Counterparts []string `json:"counterparts"`
	}
	testutil.DecodeJSON(t, rec.Body, &resp)
	if len(resp.Counterparts) != 2 {
		t.Errorf("counterparts: got %d, want 2", len(resp.Counterparts))
	}
}
