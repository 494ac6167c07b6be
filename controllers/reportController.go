package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"cleansweep-be/config"
	"cleansweep-be/detection"
	"cleansweep-be/models"
	"cleansweep-be/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Classifier screens incoming report photos. Package-level so the
// inference backend can be swapped out.
var Classifier detection.Classifier = detection.NewHTTPClassifier()

// currentUsername extracts the username set by the auth middleware.
func currentUsername(c *gin.Context) (string, bool) {
	usernameVal, exists := c.Get("username")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return "", false
	}
	username, ok := usernameVal.(string)
	if !ok || username == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return "", false
	}
	return username, true
}

// CreateReport handles a citizen's "before" litter report
func CreateReport(c *gin.Context) {
	username, ok := currentUsername(c)
	if !ok {
		return
	}

	var input struct {
		Image       string   `json:"image"`
		Lat         *float64 `json:"lat"`
		Lon         *float64 `json:"lon"`
		Description string   `json:"description"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payload, err := services.ValidateBeforeSubmission(input.Image, input.Description, input.Lat, input.Lon, username)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Run classifier
	result, err := Classifier.Detect(ctx, payload.Image)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "inference failed", "detail": err.Error()})
		return
	}

	outcome, plasticCount, pileCount := detection.Screen(result)
	if outcome.IsRejected() {
		// Business rejection, not a transport failure: 200 with a reason
		c.JSON(http.StatusOK, gin.H{
			"message":       outcome.Message,
			"reason":        outcome.Reason,
			"count":         result.Count,
			"plastic_count": plasticCount,
			"pile_count":    pileCount,
		})
		return
	}

	report := models.LitterReport{
		ID:          primitive.NewObjectID(),
		Reporter:    payload.Username,
		Image:       payload.Image,
		Description: payload.Description,
		Location:    &models.Coordinates{Lat: payload.Lat, Lng: payload.Lon},
		Status:      models.StatusPending,
		Count:       result.Count,
		Categories:  result.Categories,
		Detections:  result.Detections,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	reportCollection := config.GetCollection("reports")
	if _, err := reportCollection.InsertOne(ctx, report); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db insert failed", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       outcome.Message,
		"report_id":     report.ID.Hex(),
		"count":         result.Count,
		"plastic_count": plasticCount,
		"pile_count":    pileCount,
	})
}

// SubmitCleanup handles a citizen's "after" photo for an existing report
func SubmitCleanup(c *gin.Context) {
	username, ok := currentUsername(c)
	if !ok {
		return
	}

	var input struct {
		ReportID    string   `json:"report_id"`
		Image       string   `json:"image"`
		Lat         *float64 `json:"lat"`
		Lon         *float64 `json:"lon"`
		Description string   `json:"description"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payload, err := services.ValidateAfterSubmission(input.Image, input.Description, input.Lat, input.Lon, username)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reportID, err := primitive.ObjectIDFromHex(input.ReportID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	reportCollection := config.GetCollection("reports")
	cleanupCollection := config.GetCollection("cleanups")

	var report models.LitterReport
	err = reportCollection.FindOne(ctx, bson.M{"_id": reportID}).Decode(&report)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve report"})
		}
		return
	}

	if err := services.Transition(report.Status, models.StatusAwaitingVerification); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "report is not awaiting cleanup", "status": report.Status})
		return
	}

	// An incomparable distance (report stored without a location) skips
	// the proximity check rather than rejecting the cleanup.
	cleanupLocation := &models.Coordinates{Lat: payload.Lat, Lng: payload.Lon}
	distance := services.DistanceMeters(report.Location, cleanupLocation)
	if services.CleanupTooFar(distance) {
		c.JSON(http.StatusOK, gin.H{
			"message":         services.MessageRejected,
			"reason":          "too_far_from_report",
			"distance_meters": distance,
		})
		return
	}

	cleanup := models.CleanupSubmission{
		ID:          primitive.NewObjectID(),
		ReportID:    reportID,
		Contributor: payload.Username,
		Image:       payload.Image,
		Description: payload.Description,
		Location:    cleanupLocation,
		SubmittedAt: time.Now(),
	}

	if _, err := cleanupCollection.InsertOne(ctx, cleanup); err != nil {
		// The unique reportId index catches a concurrent duplicate cleanup
		// before the status guard can; same conflict, same answer.
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "report is not awaiting cleanup"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db insert failed", "detail": err.Error()})
		return
	}

	// Status-guarded update: a concurrent cleanup on the same report loses
	// the race and sees zero matched documents.
	updateResult, err := reportCollection.UpdateOne(ctx,
		bson.M{"_id": reportID, "status": models.StatusPending},
		bson.M{"$set": bson.M{"status": models.StatusAwaitingVerification, "updatedAt": time.Now()}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db update failed", "detail": err.Error()})
		return
	}
	if updateResult.MatchedCount == 0 {
		_, _ = cleanupCollection.DeleteOne(ctx, bson.M{"_id": cleanup.ID})
		c.JSON(http.StatusConflict, gin.H{"error": "report is not awaiting cleanup"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   services.MessageAccepted,
		"report_id": reportID.Hex(),
	})
}

// VerifyReport records an official's approve/disapprove decision on a
// report that is awaiting verification
func VerifyReport(c *gin.Context) {
	username, ok := currentUsername(c)
	if !ok {
		return
	}

	roleVal, _ := c.Get("role")
	if role, ok := roleVal.(string); !ok || models.UserRole(role) != models.RoleOfficial {
		c.JSON(http.StatusForbidden, gin.H{"error": "only officials can verify"})
		return
	}

	var input struct {
		ReportID string `json:"report_id" binding:"required"`
		Action   string `json:"action" binding:"required"`
		Notes    string `json:"notes"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	action := models.VerificationAction(input.Action)
	nextStatus, err := services.NextStatus(action)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reportID, err := primitive.ObjectIDFromHex(input.ReportID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	reportCollection := config.GetCollection("reports")
	verificationCollection := config.GetCollection("verifications")

	var report models.LitterReport
	err = reportCollection.FindOne(ctx, bson.M{"_id": reportID}).Decode(&report)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve report"})
		}
		return
	}

	if err := services.Transition(report.Status, nextStatus); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "report is not awaiting verification", "status": report.Status})
		return
	}

	update := bson.M{"status": nextStatus, "updatedAt": time.Now()}
	if nextStatus == models.StatusVerified {
		update["verifiedBy"] = username
		update["verifiedAt"] = time.Now()
	}

	updateResult, err := reportCollection.UpdateOne(ctx,
		bson.M{"_id": reportID, "status": models.StatusAwaitingVerification},
		bson.M{"$set": update},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db update failed", "detail": err.Error()})
		return
	}
	if updateResult.MatchedCount == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "report is not awaiting verification"})
		return
	}

	// Audit only the decision that took effect. Two officials racing on
	// the same report must not both leave a row; the loser stops at the
	// guard above without recording anything.
	decision := models.VerificationDecision{
		ID:        primitive.NewObjectID(),
		ReportID:  reportID,
		Official:  username,
		Action:    action,
		Notes:     input.Notes,
		CreatedAt: time.Now(),
	}
	if _, err := verificationCollection.InsertOne(ctx, decision); err != nil {
		log.Printf("verification applied but audit insert failed for report %s: %v", reportID.Hex(), err)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "verification recorded",
		"report_id": reportID.Hex(),
		"action":    action,
	})
}

// pendingReportRow is the wire shape of an unresolved report.
type pendingReportRow struct {
	ID          primitive.ObjectID  `json:"id"`
	Reporter    string              `json:"reporter"`
	Description string              `json:"description"`
	Location    *models.Coordinates `json:"location,omitempty"`
	Status      models.ReportStatus `json:"status"`
	ImageBase64 string              `json:"image_base64,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
}

func fetchPendingReports(ctx context.Context) ([]pendingReportRow, error) {
	reportCollection := config.GetCollection("reports")
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := reportCollection.Find(ctx, bson.M{"status": models.StatusPending}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reports []models.LitterReport
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, err
	}

	rows := make([]pendingReportRow, 0, len(reports))
	for _, report := range reports {
		rows = append(rows, pendingReportRow{
			ID:          report.ID,
			Reporter:    report.Reporter,
			Description: report.Description,
			Location:    report.Location,
			Status:      report.Status,
			ImageBase64: services.EncodeImageDataURI(report.Image),
			CreatedAt:   report.CreatedAt,
		})
	}
	return rows, nil
}

// fetchPairedRows joins each report in the given status with its cleanup
// submission into the flat row shape the pairing resolver consumes.
func fetchPairedRows(ctx context.Context, status models.ReportStatus) ([]services.CompletedRow, error) {
	reportCollection := config.GetCollection("reports")
	cleanupCollection := config.GetCollection("cleanups")
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := reportCollection.Find(ctx, bson.M{"status": status}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reports []models.LitterReport
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, err
	}

	rows := make([]services.CompletedRow, 0, len(reports))
	for _, report := range reports {
		row := services.CompletedRow{
			ID:          report.ID,
			Image:       report.Image,
			Description: report.Description,
			Location:    report.Location,
			Contributor: report.Reporter,
			CreatedAt:   report.CreatedAt,
		}

		var cleanup models.CleanupSubmission
		switch err := cleanupCollection.FindOne(ctx, bson.M{"reportId": report.ID}).Decode(&cleanup); err {
		case nil:
			row.CleanupID = cleanup.ID
			row.CleanupImage = cleanup.Image
			row.CleanupAt = cleanup.SubmittedAt
		case mongo.ErrNoDocuments:
			// genuinely unpaired; the pairing resolver flags the row
		default:
			return nil, err
		}

		rows = append(rows, row)
	}
	return rows, nil
}

func fetchAnalytics(ctx context.Context) (*models.AnalyticsSnapshot, error) {
	reportCollection := config.GetCollection("reports")
	pending, err := reportCollection.CountDocuments(ctx, bson.M{"status": models.StatusPending})
	if err != nil {
		return nil, err
	}
	completed, err := reportCollection.CountDocuments(ctx, bson.M{"status": models.StatusAwaitingVerification})
	if err != nil {
		return nil, err
	}
	verified, err := reportCollection.CountDocuments(ctx, bson.M{"status": models.StatusVerified})
	if err != nil {
		return nil, err
	}

	// Active citizens: distinct reporters over the last 10 days
	since := time.Now().AddDate(0, 0, -10)
	reporters, err := reportCollection.Distinct(ctx, "reporter", bson.M{
		"createdAt": bson.M{"$gte": since},
	})
	if err != nil {
		return nil, err
	}

	return services.NewSnapshot(pending, completed, verified, int64(len(reporters)))
}

// GetPendingReports returns reports still awaiting cleanup
func GetPendingReports(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	rows, err := fetchPendingReports(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve pending reports"})
		return
	}

	c.JSON(http.StatusOK, rows)
}

// GetCompletedReports returns cleaned-but-unverified reports as review
// pairs
func GetCompletedReports(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	rows, err := fetchPairedRows(ctx, models.StatusAwaitingVerification)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve completed reports"})
		return
	}

	pairs, err := services.PairRows(rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to pair completed reports", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, pairs)
}

// GetVerifiedReports returns verified reports as review pairs
func GetVerifiedReports(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	rows, err := fetchPairedRows(ctx, models.StatusVerified)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve verified reports"})
		return
	}

	pairs, err := services.PairRows(rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to pair verified reports", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, pairs)
}

// GetAnalytics returns the aggregate counts for the dashboards
func GetAnalytics(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	snapshot, err := fetchAnalytics(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute analytics"})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// GetDashboard returns all four read collections in one consistent batch,
// so a client refresh after a mutation never mixes pre- and post-mutation
// data from separate fetches
func GetDashboard(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	snapshot, err := fetchAnalytics(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute analytics"})
		return
	}

	pending, err := fetchPendingReports(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve pending reports"})
		return
	}

	completedRows, err := fetchPairedRows(ctx, models.StatusAwaitingVerification)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve completed reports"})
		return
	}
	completed, err := services.PairRows(completedRows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to pair completed reports", "detail": err.Error()})
		return
	}

	verifiedRows, err := fetchPairedRows(ctx, models.StatusVerified)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve verified reports"})
		return
	}
	verified, err := services.PairRows(verifiedRows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to pair verified reports", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"analytics": snapshot,
		"pending":   pending,
		"completed": completed,
		"verified":  verified,
	})
}

// RecentReports returns the last 10 days of reports with any cleanup
// images attached
func RecentReports(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	since := time.Now().AddDate(0, 0, -10)
	reportCollection := config.GetCollection("reports")
	cleanupCollection := config.GetCollection("cleanups")
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := reportCollection.Find(ctx, bson.M{"createdAt": bson.M{"$gte": since}}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve recent reports"})
		return
	}
	defer cursor.Close(ctx)

	var reports []models.LitterReport
	if err := cursor.All(ctx, &reports); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode recent reports"})
		return
	}

	type recentRow struct {
		ID            primitive.ObjectID  `json:"id"`
		Reporter      string              `json:"reporter"`
		Description   string              `json:"description"`
		Location      *models.Coordinates `json:"location,omitempty"`
		Status        models.ReportStatus `json:"status"`
		CreatedAt     time.Time           `json:"created_at"`
		CleanupImages []string            `json:"cleanup_images"`
	}

	rows := make([]recentRow, 0, len(reports))
	for _, report := range reports {
		row := recentRow{
			ID:            report.ID,
			Reporter:      report.Reporter,
			Description:   report.Description,
			Location:      report.Location,
			Status:        report.Status,
			CreatedAt:     report.CreatedAt,
			CleanupImages: []string{},
		}

		cleanupCursor, err := cleanupCollection.Find(ctx, bson.M{"reportId": report.ID})
		if err == nil {
			var cleanups []models.CleanupSubmission
			if err := cleanupCursor.All(ctx, &cleanups); err == nil {
				for _, cleanup := range cleanups {
					row.CleanupImages = append(row.CleanupImages, services.EncodeImageDataURI(cleanup.Image))
				}
			}
		}

		rows = append(rows, row)
	}

	c.JSON(http.StatusOK, rows)
}
