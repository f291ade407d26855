package reviews_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/helpinghands/volunteerhub/internal/app/features/reviews"
	activitystore "github.com/helpinghands/volunteerhub/internal/app/store/activities"
	"github.com/helpinghands/volunteerhub/internal/app/store/audit"
	notificationstore "github.com/helpinghands/volunteerhub/internal/app/store/notifications"
	reviewstore "github.com/helpinghands/volunteerhub/internal/app/store/reviews"
	"github.com/helpinghands/volunteerhub/internal/app/system/auditlog"
	"github.com/helpinghands/volunteerhub/internal/app/system/notify"
	"github.com/helpinghands/volunteerhub/internal/app/system/roles"
	"github.com/helpinghands/volunteerhub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*reviews.Handler, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()

	store := reviewstore.New(db, false)
	activities := activitystore.New(db, activitystore.DeleteBlock)
	dispatcher := notify.New(notificationstore.New(db), logger)
	auditLogger := auditlog.New(audit.New(db), logger, auditlog.Config{Admin: "db", Engagement: "db"})

	h := reviews.NewHandler(db, store, activities, dispatcher, auditLogger, logger)
	return h, db
}

func TestHandleCreate(t *testing.T) {
	h, db := newTestHandler(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := f.CreateOrgAdmin(ctx, "Org Admin", "admin@example.com")
	activity := f.CreateActivity(ctx, admin.ID, "Park Cleanup", time.Now().Add(48*time.Hour))
	vol := f.CreateVolunteer(ctx, "Vol One", "vol1@example.com")

	body := map[string]any{
		"activity_id": activity.ID.Hex(),
		"rating":      4,
		"comment":     "great event",
	}
	req := testutil.NewJSONRequest(t, "POST", "/reviews", body, testutil.AsTestUser(vol))
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
}

func TestHandleCreate_BadRating(t *testing.T) {
	h, db := newTestHandler(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := f.CreateOrgAdmin(ctx, "Org Admin", "admin@example.com")
	activity := f.CreateActivity(ctx, admin.ID, "Park Cleanup", time.Now().Add(48*time.Hour))
	vol := f.CreateVolunteer(ctx, "Vol One", "vol1@example.com")

	body := map[string]any{
		"activity_id": activity.ID.Hex(),
		"rating":      9,
		"comment":     "way too good",
	}
	req := testutil.NewJSONRequest(t, "POST", "/reviews", body, testutil.AsTestUser(vol))
	rec := httptest.NewRecorder()

	h.HandleCreate(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
}

func TestServeByActivity(t *testing.T) {
	h, db := newTestHandler(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := f.CreateOrgAdmin(ctx, "Org Admin", "admin@example.com")
	activity := f.CreateActivity(ctx, admin.ID, "Park Cleanup", time.Now().Add(48*time.Hour))
	vol1 := f.CreateVolunteer(ctx, "Vol One", "vol1@example.com")
	vol2 := f.CreateVolunteer(ctx, "Vol Two", "vol2@example.com")

	rev := f.CreateReview(ctx, activity.ID, vol1, 5, "excellent")
	f.CreateReview(ctx, activity.ID, vol2, 3, "decent")
	f.CreateReply(ctx, rev, admin, "thank you")

	req := testutil.NewAuthenticatedRequest("GET", "/reviews/activity/"+activity.ID.Hex(), testutil.AsTestUser(vol1))
	req = testutil.WithChiURLParam(req, "id", activity.ID.Hex())
	rec := httptest.NewRecorder()

	h.ServeByActivity(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (%s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp struct {
		Reviews []reviewstore.ReviewWithReplies `json:"reviews"`
		Rating  reviewstore.RatingSummary       `json:"rating"`
	}
	testutil.DecodeJSON(t, rec.Body, &resp)
	if len(resp.Reviews) != 2 {
		t.Fatalf("reviews: got %d, want 2", len(resp.Reviews))
	}
	if resp.Rating.ReviewCount != 2 || resp.Rating.AverageRating != 4.0 {
		t.Errorf("rating: got %+v, want {4 2}", resp.Rating)
	}
}

func TestServeByActivity_MissingActivity(t *testing.T) {
	h, db := newTestHandler(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	vol := f.CreateVolunteer(ctx, "Vol One", "vol1@example.com")
	missing := "ffffffffffffffffffffffff"

	req := testutil.NewAuthenticatedRequest("GET", "/reviews/activity/"+missing, testutil.AsTestUser(vol))
	req = testutil.WithChiURLParam(req, "id", missing)
	rec := httptest.NewRecorder()

	h.ServeByActivity(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestHandleDelete_ByAuthor(t *testing.T) {
	h, db := newTestHandler(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := f.CreateOrgAdmin(ctx, "Org Admin", "admin@example.com")
	activity := f.CreateActivity(ctx, admin.ID, "Park Cleanup", time.Now().Add(48*time.Hour))
	vol := f.CreateVolunteer(ctx, "Vol One", "vol1@example.com")
	rev := f.CreateReview(ctx, activity.ID, vol, 4, "good")
	f.CreateReply(ctx, rev, admin, "thanks")

	req := testutil.NewAuthenticatedRequest("DELETE", "/reviews/"+rev.ID.Hex(), testutil.AsTestUser(vol))
	req = testutil.WithChiURLParam(req, "id", rev.ID.Hex())
	rec := httptest.NewRecorder()

	h.HandleDelete(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (%s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	n, err := reviewstore.New(db, false).CountReplies(ctx, rev.ID)
	if err != nil {
		t.Fatalf("CountReplies failed: %v", err)
	}
	if n != 0 {
		t.Errorf("replies after delete: got %d, want 0", n)
	}
}

func TestHandleDelete_OrgAdminForbidden(t *testing.T) {
	h, db := newTestHandler(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := f.CreateOrgAdmin(ctx, "Org Admin", "admin@example.com")
	activity := f.CreateActivity(ctx, admin.ID, "Park Cleanup", time.Now().Add(48*time.Hour))
	vol := f.CreateVolunteer(ctx, "Vol One", "vol1@example.com")
	rev := f.CreateReview(ctx, activity.ID, vol, 4, "good")

	req := testutil.NewAuthenticatedRequest("DELETE", "/reviews/"+rev.ID.Hex(), testutil.AsTestUser(admin))
	req = testutil.WithChiURLParam(req, "id", rev.ID.Hex())
	rec := httptest.NewRecorder()

	h.HandleDelete(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestHandleReply_OwningAdmin(t *testing.T) {
	h, db := newTestHandler(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := f.CreateOrgAdmin(ctx, "Org Admin", "admin@example.com")
	activity := f.CreateActivity(ctx, admin.ID, "Park Cleanup", time.Now().Add(48*time.Hour))
	vol := f.CreateVolunteer(ctx, "Vol One", "vol1@example.com")
	rev := f.CreateReview(ctx, activity.ID, vol, 4, "good")

	body := map[string]string{"text": "thanks for coming"}
	req := testutil.NewJSONRequest(t, "POST", "/reviews/"+rev.ID.Hex()+"/replies", body, testutil.AsTestUser(admin))
	req = testutil.WithChiURLParam(req, "id", rev.ID.Hex())
	rec := httptest.NewRecorder()

	h.HandleReply(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d (%s)", rec.Code, http.StatusCreated, rec.Body.String())
	}

	// The review author hears about the reply.
	feed, err := notificationstore.New(db).ListForRecipient(ctx, vol.ID, string(roles.Volunteer), 0)
	if err != nil {
		t.Fatalf("ListForRecipient failed: %v", err)
	}
	if len(feed) != 1 {
		t.Errorf("author notifications: got %d, want 1", len(feed))
	}
}

func TestHandleReply_UninvolvedAdmin(t *testing.T) {
	h, db := newTestHandler(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := f.CreateOrgAdmin(ctx, "Owner", "owner@example.com")
	other := f.CreateOrgAdmin(ctx, "Other", "other@example.com")
	activity := f.CreateActivity(ctx, owner.ID, "Park Cleanup", time.Now().Add(48*time.Hour))
	vol := f.CreateVolunteer(ctx, "Vol One", "vol1@example.com")
	rev := f.CreateReview(ctx, activity.ID, vol, 4, "good")

	body := map[string]string{"text": "not my activity"}
	req := testutil.NewJSONRequest(t, "POST", "/reviews/"+rev.ID.Hex()+"/replies", body, testutil.AsTestUser(other))
	req = testutil.WithChiURLParam(req, "id", rev.ID.Hex())
	rec := httptest.NewRecorder()

	h.HandleReply(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestHandleReply_AuthorNoSelfNotification(t *testing.T) {
	h, db := newTestHandler(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := f.CreateOrgAdmin(ctx, "Org Admin", "admin@example.com")
	activity := f.CreateActivity(ctx, admin.ID, "Park Cleanup", time.Now().Add(48*time.Hour))
	vol := f.CreateVolunteer(ctx, "Vol One", "vol1@example.com")
	rev := f.CreateReview(ctx, activity.ID, vol, 4, "good")

	body := map[string]string{"text": "forgot to add: the weather was perfect"}
	req := testutil.NewJSONRequest(t, "POST", "/reviews/"+rev.ID.Hex()+"/replies", body, testutil.AsTestUser(vol))
	req = testutil.WithChiURLParam(req, "id", rev.ID.Hex())
	rec := httptest.NewRecorder()

	h.HandleReply(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d (%s)", rec.Code, http.StatusCreated, rec.Body.String())
	}

	feed, err := notificationstore.New(db).ListForRecipient(ctx, vol.ID, string(roles.Volunteer), 0)
	if err != nil {
		t.Fatalf("ListForRecipient failed: %v", err)
	}
	if len(feed) != 0 {
		t.Errorf("self notifications: got %d, want 0", len(feed))
	}
}
