package dto

import (
	"encoding/json"

	"hiring-api/internal/models"
)

// NewApplicationResponse maps a stored application, decoding the persisted
// document descriptors. Malformed JSON yields an empty document list.
func NewApplicationResponse(app *models.Application) ApplicationResponse {
	resp := ApplicationResponse{
		ID:            app.ID,
		ApplicantID:   app.ApplicantID,
		Program:       app.Program,
		Status:        app.Status,
		Result:        app.Result,
		TotalScore:    app.TotalScore,
		AttemptNumber: app.AttemptNumber,
		DemoSchedule:  app.DemoSchedule,
		HRNotes:       app.HRNotes,
		CreatedAt:     app.CreatedAt,
		UpdatedAt:     app.UpdatedAt,
	}
	if app.Applicant != nil {
		resp.ApplicantName = app.Applicant.Name
	}
	if len(app.Documents) > 0 {
		var docs []DocumentDescriptor
		if err := json.Unmarshal(app.Documents, &docs); err == nil {
			resp.Documents = docs
		}
	}
	return resp
}

// NewNotificationResponse maps an audit row; the message body is not exposed.
func NewNotificationResponse(n *models.Notification) NotificationResponse {
	return NotificationResponse{
		ID:      n.ID,
		Email:   n.Email,
		Subject: n.Subject,
		Type:    n.Type,
		SentAt:  n.SentAt,
	}
}

// NewUserResponse maps a stored user to its public view.
func NewUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Phone:     user.Phone,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// NewRubricResponse maps a stored rubric to its public view.
func NewRubricResponse(rubric *models.Rubric) RubricResponse {
	return RubricResponse{
		ID:        rubric.ID,
		Criteria:  rubric.Criteria,
		MaxScore:  rubric.MaxScore,
		Weight:    rubric.Weight,
		IsActive:  rubric.IsActive,
		CreatedAt: rubric.CreatedAt,
		UpdatedAt: rubric.UpdatedAt,
	}
}
