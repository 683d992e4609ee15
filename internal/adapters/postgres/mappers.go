package postgres

import (
	"encoding/json"

	"github.com/studenthub/directory-service/internal/domain"
)

func toDomainUser(rec userModel) domain.User {
	return domain.User{
		UserID:            rec.UserID,
		Name:              rec.Name,
		Email:             rec.Email,
		PasswordHash:      rec.PasswordHash,
		StudentID:         rec.StudentID,
		StudentIDDocument: rec.StudentIDDocument,
		Role:              domain.Role(rec.Role),
		Status:            domain.AccountStatus(rec.Status),
		CreatedAt:         rec.CreatedAt,
		UpdatedAt:         rec.UpdatedAt,
	}
}

func toDomainProfile(rec profileModel) domain.Profile {
	var interests []string
	if rec.Interests != "" {
		_ = json.Unmarshal([]byte(rec.Interests), &interests)
	}
	var contact domain.ContactInfo
	if rec.Contact != "" {
		_ = json.Unmarshal([]byte(rec.Contact), &contact)
	}
	return domain.Profile{
		ProfileID:       rec.ProfileID,
		UserID:          rec.UserID,
		Username:        rec.Username,
		Bio:             rec.Bio,
		Interests:       interests,
		Contact:         contact,
		PhotoURL:        rec.PhotoURL,
		Visibility:      domain.Visibility(rec.Visibility),
		FlaggedAttempts: rec.FlaggedAttempts,
		CreatedAt:       rec.CreatedAt,
		UpdatedAt:       rec.UpdatedAt,
	}
}

func toDomainSkill(rec skillModel) domain.Skill {
	return domain.Skill{
		SkillID: rec.SkillID,
		UserID:  rec.UserID,
		Name:    rec.Name,
		Level:   rec.Level,
		AddedAt: rec.AddedAt,
	}
}

func toDomainProject(rec projectModel) domain.Project {
	return domain.Project{
		ProjectID:   rec.ProjectID,
		UserID:      rec.UserID,
		Name:        rec.Name,
		Description: rec.Description,
		GitHubLink:  rec.GitHubLink,
		LiveLink:    rec.LiveLink,
		AddedAt:     rec.AddedAt,
	}
}

func toDomainBannedWord(rec bannedWordModel) domain.BannedWord {
	return domain.BannedWord{
		BannedWordID: rec.BannedWordID,
		Term:         rec.Term,
		CreatedAt:    rec.CreatedAt,
	}
}

func marshalJSONColumn(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(raw)
}
