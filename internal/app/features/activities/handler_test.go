package activities_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/helpinghands/volunteerhub/internal/app/features/activities"
	activitystore "github.com/helpinghands/volunteerhub/internal/app/store/activities"
	"github.com/helpinghands/volunteerhub/internal/app/store/audit"
	notificationstore "github.com/helpinghands/volunteerhub/internal/app/store/notifications"
	reviewstore "github.com/helpinghands/volunteerhub/internal/app/store/reviews"
	"github.com/helpinghands/volunteerhub/internal/app/system/auditlog"
	"github.com/helpinghands/volunteerhub/internal/app/system/notify"
	"github.com/helpinghands/volunteerhub/internal/app/system/roles"
	"github.com/helpinghands/volunteerhub/internal/domain/models"
	"github.com/helpinghands/volunteerhub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T, policy activitystore.DeletePolicy) (*activities.Handler, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()

	store := activitystore.New(db, policy)
	reviews := reviewstore.New(db, false)
	dispatcher := notify.New(notificationstore.New(db), logger)
	auditLogger := auditlog.New(audit.New(db), logger, auditlog.Config{Admin: "db", Engagement: "db"})

	h := activities.NewHandler(db, store, reviews, dispatcher, auditLogger, logger)
	return h, db
}

func TestHandleCreate(t *testing.T) {
	h, db := newTestHandler(t, activitystore.DeleteBlock)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := f.CreateOrgAdmin(ctx, "Org Admin", "admin@example.com")

	body := map[string]any{
		"name":        "Park Cleanup",
		"location":    "Riverside Park",
		"date":        time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		"description": "Bring gloves.",
		"genre":       string(models.GenreCommunityService),
	}
	req := testutil.NewJSONRequest(t, "POST", "/activities", body, testutil.AsTestUser(admin))
	rec := httptest.NewRecorder()

	h.HandleCreate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d (%s)", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var resp struct {
		ID string `json:"id"`
	}
	testutil.DecodeJSON(t, rec.Body, &resp)
	if resp.ID == "" {
		t.Error("expected id in response")
	}

	// The creation lands in the admin audit trail.
	events, err := audit.New(db).Query(ctx, audit.QueryFilter{EventType: audit.EventActivityCreated})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("audit events: got %d, want 1", len(events))
	}
}

func TestHandleCreate_InvalidGenre(t *testing.T) {
	h, db := newTestHandler(t, activitystore.DeleteBlock)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := f.CreateOrgAdmin(ctx, "Org Admin", "admin@example.com")

	body := map[string]any{
		"name":     "Park Cleanup",
		"location": "Riverside Park",
		"date":     time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		"genre":    "knitting",
	}
	req := testutil.NewJSONRequest(t, "POST", "/activities", body, testutil.AsTestUser(admin))
	rec := httptest.NewRecorder()

	h.HandleCreate(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
}

func TestServeList(t *testing.T) {
	h, db := newTestHandler(t, activitystore.DeleteBlock)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := f.CreateOrgAdmin(ctx, "Org Admin", "admin@example.com")
	f.CreateActivity(ctx, admin.ID, "Park Cleanup", time.Now().Add(48*time.Hour))
	f.CreateActivity(ctx, admin.ID, "Food Drive", time.Now().Add(72*time.Hour))
	vol := f.CreateVolunteer(ctx, "Vol One", "vol1@example.com")

	req := testutil.NewAuthenticatedRequest("GET", "/activities", testutil.AsTestUser(vol))
	rec := httptest.NewRecorder()

	h.ServeList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}

	var resp struct {
		Activities []models.Activity `json:"activities"`
	}
	testutil.DecodeJSON(t, rec.Body, &resp)
	if len(resp.Activities) != 2 {
		t.Errorf("activities: got %d, want 2", len(resp.Activities))
	}
}

func TestServeList_Search(t *testing.T) {
	h, db := newTestHandler(t, activitystore.DeleteBlock)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := f.CreateOrgAdmin(ctx, "Org Admin", "admin@example.com")
	f.CreateActivity(ctx, admin.ID, "Park Cleanup", time.Now().Add(48*time.Hour))
	f.CreateActivity(ctx, admin.ID, "Food Drive", time.Now().Add(72*time.Hour))
	vol := f.CreateVolunteer(ctx, "Vol One", "vol1@example.com")

	req := testutil.NewAuthenticatedRequest("GET", "/activities?search=park", testutil.AsTestUser(vol))
	rec := httptest.NewRecorder()

	h.ServeList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}

	var resp struct {
		Activities []models.Activity `json:"activities"`
	}
	testutil.DecodeJSON(t, rec.Body, &resp)
	if len(resp.Activities) != 1 {
		t.Fatalf("activities: got %d, want 1", len(resp.Activities))
	}
	if resp.Activities[0].Name != "Park Cleanup" {
		t.Errorf("name: got %q, want %q", resp.Activities[0].Name, "Park Cleanup")
	}
}

func TestServeView(t *testing.T) {
	h, db := newTestHandler(t, activitystore.DeleteBlock)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := f.CreateOrgAdmin(ctx, "Org Admin", "admin@example.com")
	activity := f.CreateActivity(ctx, admin.ID, "Park Cleanup", time.Now().Add(48*time.Hour))
	vol := f.CreateVolunteer(ctx, "Vol One", "vol1@example.com")
	f.CreateReview(ctx, activity.ID, vol, 4, "good")

	req := testutil.NewAuthenticatedRequest("GET", "/activities/"+activity.ID.Hex(), testutil.AsTestUser(vol))
	req = testutil.WithChiURLParam(req, "id", activity.ID.Hex())
	rec := httptest.NewRecorder()

	h.ServeView(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (%s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp struct {
		Activity models.Activity           `json:"activity"`
		Rating   reviewstore.RatingSummary `json:"rating"`
	}
	testutil.DecodeJSON(t, rec.Body, &resp)
	if resp.Activity.ID != activity.ID {
		t.Error("expected the requested activity")
	}
	if resp.Rating.ReviewCount != 1 || resp.Rating.AverageRating != 4.0 {
		t.Errorf("rating: got %+v, want {4 1}", resp.Rating)
	}
}

func TestServeView_Missing(t *testing.T) {
	h, db := newTestHandler(t, activitystore.DeleteBlock)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	vol := f.CreateVolunteer(ctx, "Vol One", "vol1@example.com")
	missing := "ffffffffffffffffffffffff"

	req := testutil.NewAuthenticatedRequest("GET", "/activities/"+missing, testutil.AsTestUser(vol))
	req = testutil.WithChiURLParam(req, "id", missing)
	rec := httptest.NewRecorder()

	h.ServeView(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestHandleUpdate_PlatformAdmin(t *testing.T) {
	h, db := newTestHandler(t, activitystore.DeleteBlock)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := f.CreateOrgAdmin(ctx, "Owner", "owner@example.com")
	platform := f.CreatePlatformAdmin(ctx, "Platform Admin", "platform@example.com")
	activity := f.CreateActivity(ctx, owner.ID, "Park Cleanup", time.Now().Add(48*time.Hour))

	body := map[string]any{
		"name":     "Beach Cleanup",
		"location": "North Beach",
		"date":     time.Now().Add(96 * time.Hour).Format(time.RFC3339),
		"genre":    string(models.GenreCommunityService),
	}
	req := testutil.NewJSONRequest(t, "PUT", "/activities/"+activity.ID.Hex(), body, testutil.AsTestUser(platform))
	req = testutil.WithChiURLParam(req, "id", activity.ID.Hex())
	rec := httptest.NewRecorder()

	h.HandleUpdate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (%s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	got, err := h.Store.GetByID(ctx, activity.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "Beach Cleanup" {
		t.Errorf("name: got %q, want %q", got.Name, "Beach Cleanup")
	}
	// Ownership is unchanged by a platform admin edit.
	if got.OwnerID != owner.ID {
		t.Error("expected ownership to be preserved")
	}
}

func TestHandleDelete_CascadeNotifiesRejected(t *testing.T) {
	h, db := newTestHandler(t, activitystore.DeleteCascade)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := f.CreateOrgAdmin(ctx, "Org Admin", "admin@example.com")
	activity := f.CreateActivity(ctx, admin.ID, "Park Cleanup", time.Now().Add(48*time.Hour))
	vol := f.CreateVolunteer(ctx, "Vol One", "vol1@example.com")
	f.CreateJoinRequest(ctx, activity.ID, vol, models.JoinPending)

	req := testutil.NewAuthenticatedRequest("DELETE", "/activities/"+activity.ID.Hex(), testutil.AsTestUser(admin))
	req = testutil.WithChiURLParam(req, "id", activity.ID.Hex())
	rec := httptest.NewRecorder()

	h.HandleDelete(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (%s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp struct {
		Deleted         bool `json:"deleted"`
		RejectedPending int  `json:"rejected_pending"`
	}
	testutil.DecodeJSON(t, rec.Body, &resp)
	if !resp.Deleted || resp.RejectedPending != 1 {
		t.Errorf("response: got %+v, want deleted with 1 rejection", resp)
	}

	// The rejected volunteer hears about it.
	feed, err := notificationstore.New(db).ListForRecipient(ctx, vol.ID, string(roles.Volunteer), 0)
	if err != nil {
		t.Fatalf("ListForRecipient failed: %v", err)
	}
	if len(feed) != 1 {
		t.Errorf("volunteer notifications: got %d, want 1", len(feed))
	}
}

func TestHandleDelete_BlockedByAccepted(t *testing.T) {
	h, db := newTestHandler(t, activitystore.DeleteCascade)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := f.CreateOrgAdmin(ctx, "Org Admin", "admin@example.com")
	activity := f.CreateActivity(ctx, admin.ID, "Park Cleanup", time.Now().Add(48*time.Hour))
	vol := f.CreateVolunteer(ctx, "Vol One", "vol1@example.com")
	f.CreateJoinRequest(ctx, activity.ID, vol, models.JoinAccepted)

	req := testutil.NewAuthenticatedRequest("DELETE", "/activities/"+activity.ID.Hex(), testutil.AsTestUser(admin))
	req = testutil.WithChiURLParam(req, "id", activity.ID.Hex())
	rec := httptest.NewRecorder()

	h.HandleDelete(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusConflict)
	}
}
