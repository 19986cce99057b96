package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nutrigenomics-server/internal/domain"
	"github.com/nutrigenomics-server/internal/genotype"
	"github.com/nutrigenomics-server/internal/mealplan"
)

const disclaimer = "This is for educational purposes only. Consult a healthcare professional."

func (s *Server) apiError(c *gin.Context, status int, code, message string) {
	c.JSON(status, domain.APIError{Code: code, Message: message})
}

// allowedFile checks the extension against the upload whitelist.
func (s *Server) allowedFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range s.cfg.Upload.AllowedExts {
		if ext == allowed {
			return true
		}
	}
	return false
}

// handleUpload accepts a raw genotype export and opens a session for
// it. The file stays on disk until the session is deleted.
func (s *Server) handleUpload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		s.apiError(c, http.StatusBadRequest, domain.ErrCodeInvalidInput, `Please include a file using the "file" field`)
		return
	}
	if file.Filename == "" {
		s.apiError(c, http.StatusBadRequest, domain.ErrCodeInvalidInput, "Please select a file to upload")
		return
	}
	if !s.allowedFile(file.Filename) {
		s.apiError(c, http.StatusBadRequest, domain.ErrCodeInvalidInput,
			fmt.Sprintf("Invalid file type. Allowed: %s", strings.Join(s.cfg.Upload.AllowedExts, ", ")))
		return
	}
	if file.Size > s.cfg.Upload.MaxSizeBytes {
		s.apiError(c, http.StatusRequestEntityTooLarge, domain.ErrCodeInvalidInput, "File exceeds the upload size limit")
		return
	}

	if err := os.MkdirAll(s.cfg.Upload.Directory, 0755); err != nil {
		s.log.WithError(err).Error("Failed to create upload directory")
		s.apiError(c, http.StatusInternalServerError, domain.ErrCodeStorage, "Failed to store upload")
		return
	}

	// Strip any path components a hostile client might send.
	cleanName := filepath.Base(file.Filename)
	session := domain.NewSession("", cleanName, file.Size)
	dest := filepath.Join(s.cfg.Upload.Directory, fmt.Sprintf("%s_%s", session.ID, cleanName))

	if err := c.SaveUploadedFile(file, dest); err != nil {
		s.log.WithError(err).Error("Failed to save uploaded file")
		s.apiError(c, http.StatusInternalServerError, domain.ErrCodeStorage, "Failed to store upload")
		return
	}
	session.Filepath = dest

	if err := s.store.SaveSession(c.Request.Context(), session); err != nil {
		s.log.WithError(err).Error("Failed to save session")
		s.apiError(c, http.StatusInternalServerError, domain.ErrCodeStorage, "Failed to save session")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"session_id": session.ID,
		"message":    "File uploaded successfully",
		"file_info": gin.H{
			"original_name": cleanName,
			"size_bytes":    session.FileSizeBytes,
		},
		"next_step": "Call POST /api/v1/analyze with your session_id",
	})
}

type sessionRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

// handleAnalyze parses the uploaded file, runs the catalogue analysis,
// and persists the encrypted findings. Re-analysis of an analyzed
// session returns the stored results.
func (s *Server) handleAnalyze(c *gin.Context) {
	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.apiError(c, http.StatusBadRequest, domain.ErrCodeInvalidInput, "Missing session_id")
		return
	}
	ctx := c.Request.Context()

	session, err := s.store.GetSession(ctx, req.SessionID)
	if errors.Is(err, domain.ErrNotFound) {
		s.apiError(c, http.StatusNotFound, domain.ErrCodeNotFound, "Session not found")
		return
	}
	if err != nil {
		s.log.WithError(err).Error("Failed to load session")
		s.apiError(c, http.StatusInternalServerError, domain.ErrCodeStorage, "Failed to load session")
		return
	}

	// Cache, then store: either way the findings come back decrypted.
	if cached, ok := s.cache.Get(ctx, session.ID); ok {
		s.respondWithResults(c, cached, true)
		return
	}
	if existing, err := s.store.GetGeneticResults(ctx, session.ID); err == nil {
		_ = s.cache.Set(ctx, session.ID, existing)
		s.respondWithResults(c, existing, true)
		return
	} else if !errors.Is(err, domain.ErrNotFound) {
		s.log.WithError(err).Error("Failed to check for existing results")
		s.apiError(c, http.StatusInternalServerError, domain.ErrCodeStorage, "Failed to load results")
		return
	}

	parser := genotype.NewParser(s.log, s.catalog.RSIDs())
	profile, err := parser.ParseFile(session.Filepath)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"session_id": session.ID,
			"error":      err,
		}).Warn("Genotype file could not be parsed")
		s.apiError(c, http.StatusUnprocessableEntity, domain.ErrCodeAnalysis, "File is not a recognizable genotype export")
		return
	}

	findings := s.analyzer.AnalyzeAll(profile)
	summary := domain.Summarize(findings)

	plaintext, err := json.Marshal(findings)
	if err != nil {
		s.apiError(c, http.StatusInternalServerError, domain.ErrCodeInternal, "Failed to encode findings")
		return
	}
	sealed, err := s.encryptor.Encrypt(plaintext)
	if err != nil {
		s.log.WithError(err).Error("Failed to encrypt findings")
		s.apiError(c, http.StatusInternalServerError, domain.ErrCodeInternal, "Failed to protect findings")
		return
	}

	results := &domain.GeneticResults{
		SessionID:  session.ID,
		FileInfo:   profile.Info(),
		Findings:   sealed,
		Summary:    summary,
		AnalyzedAt: time.Now().UTC(),
	}
	if err := s.store.SaveGeneticResults(ctx, results); err != nil {
		s.log.WithError(err).Error("Failed to save genetic results")
		s.apiError(c, http.StatusInternalServerError, domain.ErrCodeStorage, "Failed to save results")
		return
	}

	session.Advance(domain.StatusAnalyzed)
	session.HasGeneticResults = true
	if err := s.store.SaveSession(ctx, session); err != nil {
		s.log.WithError(err).Error("Failed to update session")
	}
	_ = s.cache.Set(ctx, session.ID, results)

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"session_id": session.ID,
		"results": gin.H{
			"file_info": results.FileInfo,
			"findings":  findings,
			"summary":   summary,
		},
		"next_step": "Call POST /api/v1/questionnaire to add lifestyle factors",
	})
}

// respondWithResults decrypts stored results and returns them in the
// analyze response shape.
func (s *Server) respondWithResults(c *gin.Context, results *domain.GeneticResults, cached bool) {
	findings, err := s.decryptFindings(results)
	if err != nil {
		s.log.WithError(err).Error("Failed to decrypt stored findings")
		s.apiError(c, http.StatusInternalServerError, domain.ErrCodeInternal, "Failed to read stored results")
		return
	}

	resp := gin.H{
		"success":    true,
		"session_id": results.SessionID,
		"results": gin.H{
			"file_info": results.FileInfo,
			"findings":  findings,
			"summary":   results.Summary,
		},
	}
	if cached {
		resp["message"] = "Already analyzed (cached)"
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) decryptFindings(results *domain.GeneticResults) ([]domain.VariantFinding, error) {
	plaintext, err := s.encryptor.Decrypt(results.Findings)
	if err != nil {
		return nil, err
	}
	var findings []domain.VariantFinding
	if err := json.Unmarshal(plaintext, &findings); err != nil {
		return nil, err
	}
	return findings, nil
}

type questionnaireRequest struct {
	SessionID string                 `json:"session_id" binding:"required"`
	Answers   map[string]interface{} `json:"answers"`
}

// handleQuestionnaire stores the lifestyle answers for a session. The
// answers are validated structurally at synthesis time, not here.
func (s *Server) handleQuestionnaire(c *gin.Context) {
	var req questionnaireRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.apiError(c, http.StatusBadRequest, domain.ErrCodeInvalidInput, "Missing session_id")
		return
	}
	if req.Answers == nil {
		s.apiError(c, http.StatusBadRequest, domain.ErrCodeInvalidInput, "Missing answers")
		return
	}
	ctx := c.Request.Context()

	session, err := s.store.GetSession(ctx, req.SessionID)
	if errors.Is(err, domain.ErrNotFound) {
		s.apiError(c, http.StatusNotFound, domain.ErrCodeNotFound, "Session not found")
		return
	}
	if err != nil {
		s.apiError(c, http.StatusInternalServerError, domain.ErrCodeStorage, "Failed to load session")
		return
	}

	q := &domain.Questionnaire{
		SessionID:   session.ID,
		Answers:     req.Answers,
		SubmittedAt: time.Now().UTC(),
	}
	if err := s.store.SaveQuestionnaire(ctx, q); err != nil {
		s.log.WithError(err).Error("Failed to save questionnaire")
		s.apiError(c, http.StatusInternalServerError, domain.ErrCodeStorage, "Failed to save questionnaire")
		return
	}

	session.Advance(domain.StatusQuestionnaireCompleted)
	session.HasQuestionnaire = true
	if err := s.store.SaveSession(ctx, session); err != nil {
		s.log.WithError(err).Error("Failed to update session")
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"session_id": session.ID,
		"message":    "Questionnaire submitted",
		"next_step":  "Call GET /api/v1/recommendations/" + session.ID,
	})
}

// handleQuestionnaireTemplate describes the questionnaire structure
// for clients.
func (s *Server) handleQuestionnaireTemplate(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"questionnaire": gin.H{
			"age":                   gin.H{"type": "number", "label": "Age", "min": 18, "max": 100},
			"activity_level":        gin.H{"type": "select", "label": "Activity Level", "options": []string{"sedentary", "light", "moderate", "active", "very_active"}},
			"diet_type":             gin.H{"type": "select", "label": "Diet Type", "options": []string{"omnivore", "vegetarian", "vegan", "pescatarian", "keto", "other"}},
			"alcohol_frequency":     gin.H{"type": "select", "label": "Alcohol", "options": []string{"never", "rare", "occasional", "moderate", "frequent"}},
			"caffeine_cups_per_day": gin.H{"type": "number", "label": "Caffeine (cups/day)", "min": 0, "max": 10},
			"digestive_issues":      gin.H{"type": "multiselect", "label": "Digestive Issues", "options": []string{"bloating", "gas", "diarrhea", "constipation", "heartburn", "none"}},
			"health_goals":          gin.H{"type": "multiselect", "label": "Health Goals", "options": []string{"weight_loss", "weight_gain", "energy", "sleep", "digestion", "muscle", "general"}},
			"current_supplements":   gin.H{"type": "multiselect", "label": "Supplements", "options": []string{"vitamin_d", "vitamin_b12", "iron", "omega_3", "methylfolate", "none"}},
			"known_allergies":       gin.H{"type": "multiselect", "label": "Allergies", "options": []string{"dairy", "gluten", "nuts", "shellfish", "soy", "eggs", "none"}},
		},
	})
}

// handleRecommendations synthesizes (and persists) the personalized
// recommendation bundle for an analyzed session. A missing
// questionnaire yields the genetics-only defaults.
func (s *Server) handleRecommendations(c *gin.Context) {
	sessionID := c.Param("session_id")
	ctx := c.Request.Context()

	session, err := s.store.GetSession(ctx, sessionID)
	if errors.Is(err, domain.ErrNotFound) {
		s.apiError(c, http.StatusNotFound, domain.ErrCodeNotFound, "Session not found")
		return
	}
	if err != nil {
		s.apiError(c, http.StatusInternalServerError, domain.ErrCodeStorage, "Failed to load session")
		return
	}

	results, err := s.store.GetGeneticResults(ctx, sessionID)
	if errors.Is(err, domain.ErrNotFound) {
		s.apiError(c, http.StatusBadRequest, domain.ErrCodeInvalidInput, "Please call /api/v1/analyze first")
		return
	}
	if err != nil {
		s.apiError(c, http.StatusInternalServerError, domain.ErrCodeStorage, "Failed to load results")
		return
	}

	findings, err := s.decryptFindings(results)
	if err != nil {
		s.log.WithError(err).Error("Failed to decrypt stored findings")
		s.apiError(c, http.StatusInternalServerError, domain.ErrCodeInternal, "Failed to read stored results")
		return
	}

	answers := map[string]interface{}{}
	if q, err := s.store.GetQuestionnaire(ctx, sessionID); err == nil {
		answers = q.Answers
	} else if !errors.Is(err, domain.ErrNotFound) {
		s.apiError(c, http.StatusInternalServerError, domain.ErrCodeStorage, "Failed to load questionnaire")
		return
	}

	profile, err := domain.NewLifestyleProfile(answers)
	if err != nil {
		s.apiError(c, http.StatusBadRequest, domain.ErrCodeInvalidInput, err.Error())
		return
	}

	bundle, err := s.synthesizer.Synthesize(findings, profile)
	if err != nil {
		s.apiError(c, http.StatusInternalServerError, domain.ErrCodeInternal, "Failed to synthesize recommendations")
		return
	}

	generatedAt := time.Now().UTC()
	if err := s.store.SaveRecommendations(ctx, &domain.StoredRecommendations{
		SessionID:   sessionID,
		Bundle:      bundle,
		GeneratedAt: generatedAt,
	}); err != nil {
		s.log.WithError(err).Error("Failed to save recommendations")
		s.apiError(c, http.StatusInternalServerError, domain.ErrCodeStorage, "Failed to save recommendations")
		return
	}

	session.Advance(domain.StatusComplete)
	session.HasRecommendations = true
	if err := s.store.SaveSession(ctx, session); err != nil {
		s.log.WithError(err).Error("Failed to update session")
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"session_id":      sessionID,
		"generated_at":    generatedAt,
		"genetic_summary": results.Summary,
		"recommendations": bundle,
		"disclaimer":      disclaimer,
	})
}

// handleSessionStatus reports where a session is in the workflow.
func (s *Server) handleSessionStatus(c *gin.Context) {
	session, err := s.store.GetSession(c.Request.Context(), c.Param("session_id"))
	if errors.Is(err, domain.ErrNotFound) {
		s.apiError(c, http.StatusNotFound, domain.ErrCodeNotFound, "Session not found")
		return
	}
	if err != nil {
		s.apiError(c, http.StatusInternalServerError, domain.ErrCodeStorage, "Failed to load session")
		return
	}
	c.JSON(http.StatusOK, session)
}

// handleDeleteSession removes every trace of a session: rows, cache
// entry, and the raw file on disk.
func (s *Server) handleDeleteSession(c *gin.Context) {
	sessionID := c.Param("session_id")
	ctx := c.Request.Context()

	session, err := s.store.GetSession(ctx, sessionID)
	if errors.Is(err, domain.ErrNotFound) {
		s.apiError(c, http.StatusNotFound, domain.ErrCodeNotFound, "Session not found")
		return
	}
	if err != nil {
		s.apiError(c, http.StatusInternalServerError, domain.ErrCodeStorage, "Failed to load session")
		return
	}

	if session.Filepath != "" {
		if err := os.Remove(session.Filepath); err != nil && !os.IsNotExist(err) {
			s.log.WithFields(logrus.Fields{
				"session_id": sessionID,
				"error":      err,
			}).Warn("Failed to remove uploaded file")
		}
	}
	_ = s.cache.Delete(ctx, sessionID)

	if err := s.store.DeleteSession(ctx, sessionID); err != nil {
		s.log.WithError(err).Error("Failed to delete session")
		s.apiError(c, http.StatusInternalServerError, domain.ErrCodeStorage, "Deletion failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "All data deleted"})
}

// handleListSNPs exports the catalogue grouped by category.
func (s *Server) handleListSNPs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"total_snps": s.catalog.Size(),
		"categories": s.catalog.CategoryGroups(),
	})
}

type mealPlanRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Days      int    `json:"days"`
}

// handleMealPlan asks the external planner for a meal plan built on
// the stored recommendations.
func (s *Server) handleMealPlan(c *gin.Context) {
	var req mealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.apiError(c, http.StatusBadRequest, domain.ErrCodeInvalidInput, "Missing session_id")
		return
	}
	ctx := c.Request.Context()

	if _, err := s.store.GetSession(ctx, req.SessionID); errors.Is(err, domain.ErrNotFound) {
		s.apiError(c, http.StatusNotFound, domain.ErrCodeNotFound, "Session not found")
		return
	} else if err != nil {
		s.apiError(c, http.StatusInternalServerError, domain.ErrCodeStorage, "Failed to load session")
		return
	}

	recs, err := s.store.GetRecommendations(ctx, req.SessionID)
	if errors.Is(err, domain.ErrNotFound) {
		s.apiError(c, http.StatusBadRequest, domain.ErrCodeInvalidInput, "Generate recommendations first via GET /api/v1/recommendations/"+req.SessionID)
		return
	}
	if err != nil {
		s.apiError(c, http.StatusInternalServerError, domain.ErrCodeStorage, "Failed to load recommendations")
		return
	}

	results, err := s.store.GetGeneticResults(ctx, req.SessionID)
	if err != nil {
		s.apiError(c, http.StatusInternalServerError, domain.ErrCodeStorage, "Failed to load results")
		return
	}

	answers := map[string]interface{}{}
	if q, err := s.store.GetQuestionnaire(ctx, req.SessionID); err == nil {
		answers = q.Answers
	}
	profile, err := domain.NewLifestyleProfile(answers)
	if err != nil {
		s.apiError(c, http.StatusBadRequest, domain.ErrCodeInvalidInput, err.Error())
		return
	}

	plan, err := s.planner.GenerateMealPlan(ctx, &domain.MealPlanRequest{
		Summary:         results.Summary,
		Recommendations: recs.Bundle,
		Profile:         profile,
		Days:            req.Days,
	})
	if errors.Is(err, mealplan.ErrNotConfigured) {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":           domain.ErrCodeMealPlan,
			"message":         "Meal planning is not configured on this server",
			"fallback_advice": "Focus on the dietary recommendations provided in your report.",
		})
		return
	}
	if err != nil {
		s.log.WithError(err).Error("Meal plan generation failed")
		c.JSON(http.StatusBadGateway, gin.H{
			"error":           domain.ErrCodeMealPlan,
			"message":         "Meal plan generation failed",
			"fallback_advice": "Focus on the dietary recommendations provided in your report.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"meal_plan": plan,
	})
}
