package controllers

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cleansweep-be/config"
	"cleansweep-be/models"
	"cleansweep-be/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testAfterImage = base64.StdEncoding.EncodeToString([]byte("after-bytes"))

// postContext builds a gin test context carrying an authenticated user,
// the way the auth middleware would hand it to a handler.
func postContext(t *testing.T, path, body, username, role string) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("username", username)
	if role != "" {
		c.Set("role", role)
	}
	return w, c
}

func getContext(t *testing.T, path string) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, path, nil)
	return w, c
}

func reportDoc(id primitive.ObjectID, status models.ReportStatus, loc *models.Coordinates) bson.D {
	doc := bson.D{
		{Key: "_id", Value: id},
		{Key: "reporter", Value: "asha"},
		{Key: "description", Value: "overflowing bin near the park gate"},
		{Key: "status", Value: string(status)},
		{Key: "createdAt", Value: time.Now()},
		{Key: "updatedAt", Value: time.Now()},
	}
	if loc != nil {
		doc = append(doc, bson.E{Key: "location", Value: bson.D{
			{Key: "lat", Value: loc.Lat},
			{Key: "lng", Value: loc.Lng},
		}})
	}
	return doc
}

// drainCommands pops every command the handler sent, in order.
func drainCommands(mt *mtest.T) []string {
	var names []string
	for evt := mt.GetStartedEvent(); evt != nil; evt = mt.GetStartedEvent() {
		names = append(names, evt.CommandName)
	}
	return names
}

func TestSubmitCleanupSkipsProximityForReportWithoutLocation(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("accepts cleanup when report has no stored location", func(mt *mtest.T) {
		config.SetDatabase(mt.DB)

		reportID := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "cleansweep.reports", mtest.FirstBatch,
				reportDoc(reportID, models.StatusPending, nil)),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(
				bson.E{Key: "n", Value: 1},
				bson.E{Key: "nModified", Value: 1},
			),
		)

		body := fmt.Sprintf(`{"report_id":%q,"image":%q,"lat":28.6139,"lon":77.2090}`,
			reportID.Hex(), testAfterImage)
		w, c := postContext(mt.T, "/api/cleanup", body, "asha", "")

		SubmitCleanup(c)

		if w.Code != http.StatusOK {
			mt.Fatalf("status = %d, want %d; body %s", w.Code, http.StatusOK, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), services.MessageAccepted) {
			mt.Errorf("body = %s, want an accepted outcome", w.Body.String())
		}
		if strings.Contains(w.Body.String(), "too_far_from_report") {
			mt.Errorf("cleanup rejected for distance although the report has no location: %s", w.Body.String())
		}
	})
}

func TestSubmitCleanupDuplicateCleanupConflict(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("duplicate reportId insert maps to conflict", func(mt *mtest.T) {
		config.SetDatabase(mt.DB)

		reportID := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "cleansweep.reports", mtest.FirstBatch,
				reportDoc(reportID, models.StatusPending, &models.Coordinates{Lat: 28.6139, Lng: 77.2090})),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{
				Index:   0,
				Code:    11000,
				Message: "E11000 duplicate key error collection: cleansweep.cleanups index: reportId_1",
			}),
		)

		body := fmt.Sprintf(`{"report_id":%q,"image":%q,"lat":28.6139,"lon":77.2090}`,
			reportID.Hex(), testAfterImage)
		w, c := postContext(mt.T, "/api/cleanup", body, "asha", "")

		SubmitCleanup(c)

		if w.Code != http.StatusConflict {
			mt.Fatalf("status = %d, want %d; body %s", w.Code, http.StatusConflict, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), "not awaiting cleanup") {
			mt.Errorf("body = %s, want the not-awaiting-cleanup conflict", w.Body.String())
		}
	})
}

func TestVerifyReportConflictRecordsNoDecision(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("losing official leaves no audit row", func(mt *mtest.T) {
		config.SetDatabase(mt.DB)

		reportID := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "cleansweep.reports", mtest.FirstBatch,
				reportDoc(reportID, models.StatusAwaitingVerification, nil)),
			mtest.CreateSuccessResponse(
				bson.E{Key: "n", Value: 0},
				bson.E{Key: "nModified", Value: 0},
			),
		)

		body := fmt.Sprintf(`{"report_id":%q,"action":"disapprove"}`, reportID.Hex())
		w, c := postContext(mt.T, "/api/reports/verify", body, "inspector", "official")

		VerifyReport(c)

		if w.Code != http.StatusConflict {
			mt.Fatalf("status = %d, want %d; body %s", w.Code, http.StatusConflict, w.Body.String())
		}
		for _, name := range drainCommands(mt) {
			if name == "insert" {
				mt.Error("a decision that lost the status race must not be recorded")
			}
		}
	})
}

func TestVerifyReportAuditFollowsAppliedUpdate(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("audit insert happens after the status guard matches", func(mt *mtest.T) {
		config.SetDatabase(mt.DB)

		reportID := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "cleansweep.reports", mtest.FirstBatch,
				reportDoc(reportID, models.StatusAwaitingVerification, nil)),
			mtest.CreateSuccessResponse(
				bson.E{Key: "n", Value: 1},
				bson.E{Key: "nModified", Value: 1},
			),
			mtest.CreateSuccessResponse(),
		)

		body := fmt.Sprintf(`{"report_id":%q,"action":"approve"}`, reportID.Hex())
		w, c := postContext(mt.T, "/api/reports/verify", body, "inspector", "official")

		VerifyReport(c)

		if w.Code != http.StatusOK {
			mt.Fatalf("status = %d, want %d; body %s", w.Code, http.StatusOK, w.Body.String())
		}

		updateAt, insertAt := -1, -1
		for i, name := range drainCommands(mt) {
			switch name {
			case "update":
				updateAt = i
			case "insert":
				insertAt = i
			}
		}
		if insertAt == -1 {
			mt.Fatal("applied decision was never recorded")
		}
		if updateAt == -1 || insertAt < updateAt {
			mt.Errorf("audit insert at command %d precedes the guarded update at %d", insertAt, updateAt)
		}
	})
}

func TestCompletedReportsCleanupLookupFailure(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("transient cleanup lookup error surfaces as a retrieval failure", func(mt *mtest.T) {
		config.SetDatabase(mt.DB)

		reportID := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "cleansweep.reports", mtest.FirstBatch,
				reportDoc(reportID, models.StatusAwaitingVerification, nil)),
			mtest.CreateCommandErrorResponse(mtest.CommandError{
				Code:    11601,
				Message: "operation was interrupted",
				Name:    "Interrupted",
			}),
		)

		w, c := getContext(mt.T, "/api/reports/completed")

		GetCompletedReports(c)

		if w.Code != http.StatusInternalServerError {
			mt.Fatalf("status = %d, want %d; body %s", w.Code, http.StatusInternalServerError, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), "Failed to retrieve completed reports") {
			mt.Errorf("body = %s, want a retrieval failure, not a pairing one", w.Body.String())
		}
	})

	mt.Run("genuinely unpaired report still fails pairing", func(mt *mtest.T) {
		config.SetDatabase(mt.DB)

		reportID := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "cleansweep.reports", mtest.FirstBatch,
				reportDoc(reportID, models.StatusAwaitingVerification, nil)),
			mtest.CreateCursorResponse(0, "cleansweep.cleanups", mtest.FirstBatch),
		)

		w, c := getContext(mt.T, "/api/reports/completed")

		GetCompletedReports(c)

		if w.Code != http.StatusInternalServerError {
			mt.Fatalf("status = %d, want %d; body %s", w.Code, http.StatusInternalServerError, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), "Failed to pair completed reports") {
			mt.Errorf("body = %s, want a pairing failure", w.Body.String())
		}
	})
}
