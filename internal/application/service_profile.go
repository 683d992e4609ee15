package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/studenthub/directory-service/internal/domain"
	"github.com/studenthub/directory-service/internal/ports"
)

var allowedPhotoMIMEs = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

func (s *Service) GetMyProfile(ctx context.Context, userID uuid.UUID) (ProfileResponse, error) {
	return s.loadProfileResponse(ctx, userID)
}

// UpdateProfile runs moderation over the submitted free text before anything
// is persisted. Fields are checked in a fixed order (bio, then interests)
// and the first failing field wins; a rejection leaves the profile untouched
// apart from the flagged-attempt counter.
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest, idempotencyKey string) (UpdateProfileResult, error) {
	if req.Bio != nil {
		if err := domain.ValidateBio(*req.Bio); err != nil {
			return UpdateProfileResult{}, err
		}
	}
	if req.Visibility != nil {
		if err := domain.ValidateVisibility(*req.Visibility); err != nil {
			return UpdateProfileResult{}, err
		}
	}
	if err := s.reserveIdempotency(ctx, idempotencyKey, req); err != nil {
		return UpdateProfileResult{}, err
	}

	fields := make([]TextField, 0, 2)
	if req.Bio != nil {
		fields = append(fields, TextField{Name: "bio", Text: *req.Bio})
	}
	if req.Interests != nil {
		fields = append(fields, TextField{Name: "interests", Text: strings.Join(*req.Interests, " ")})
	}
	violation, err := s.CheckFields(ctx, userID, fields)
	if err != nil {
		return UpdateProfileResult{}, err
	}
	if violation != nil {
		return UpdateProfileResult{Rejection: newModerationRejection(*violation)}, nil
	}

	var interests []string
	if req.Interests != nil {
		interests = trimNonEmpty(*req.Interests)
	}
	updated, err := s.profiles.Update(ctx, ports.UpdateProfileParams{
		UserID:     userID,
		Bio:        req.Bio,
		Interests:  interests,
		Contact:    req.Contact,
		Visibility: req.Visibility,
		UpdatedAt:  s.nowFn(),
	})
	if err != nil {
		return UpdateProfileResult{}, err
	}
	s.enqueueEvent(ctx, eventTypeProfileUpdated, userID, map[string]any{
		"username":   updated.Username,
		"visibility": updated.Visibility,
	})
	_ = s.cache.Delete(ctx, cacheKeyProfile(updated.Username))

	resp, err := s.loadProfileResponse(ctx, userID)
	if err != nil {
		return UpdateProfileResult{}, err
	}
	return UpdateProfileResult{Profile: &resp}, nil
}

func (s *Service) AddSkill(ctx context.Context, userID uuid.UUID, req AddSkillRequest) (SkillView, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return SkillView{}, fmt.Errorf("%w: skill name is required", domain.ErrInvalidInput)
	}
	if err := domain.ValidateSkillLevel(req.Level); err != nil {
		return SkillView{}, err
	}
	skill, err := s.skills.Create(ctx, ports.AddSkillParams{
		UserID:  userID,
		Name:    name,
		Level:   req.Level,
		AddedAt: s.nowFn(),
	})
	if err != nil {
		return SkillView{}, err
	}
	s.invalidateProfileCache(ctx, userID)
	return SkillView{Name: skill.Name, Level: skill.Level, AddedAt: skill.AddedAt}, nil
}

// AddProject moderates the project's free text (name, then description)
// under the same first-failure-wins policy as profile edits.
func (s *Service) AddProject(ctx context.Context, userID uuid.UUID, req AddProjectRequest) (AddProjectResult, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return AddProjectResult{}, fmt.Errorf("%w: project name is required", domain.ErrInvalidInput)
	}
	violation, err := s.CheckFields(ctx, userID, []TextField{
		{Name: "name", Text: name},
		{Name: "description", Text: req.Description},
	})
	if err != nil {
		return AddProjectResult{}, err
	}
	if violation != nil {
		return AddProjectResult{Rejection: newModerationRejection(*violation)}, nil
	}

	project, err := s.projects.Create(ctx, ports.AddProjectParams{
		UserID:      userID,
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		GitHubLink:  strings.TrimSpace(req.GitHubLink),
		LiveLink:    strings.TrimSpace(req.LiveLink),
		AddedAt:     s.nowFn(),
	})
	if err != nil {
		return AddProjectResult{}, err
	}
	s.invalidateProfileCache(ctx, userID)
	view := ProjectView{
		Name:        project.Name,
		Description: project.Description,
		GitHubLink:  project.GitHubLink,
		LiveLink:    project.LiveLink,
		AddedAt:     project.AddedAt,
	}
	return AddProjectResult{Project: &view}, nil
}

func (s *Service) UploadPhoto(ctx context.Context, userID uuid.UUID, photo UploadedFile) (ProfileResponse, error) {
	ext, ok := allowedPhotoMIMEs[photo.ContentType]
	if !ok {
		return ProfileResponse{}, fmt.Errorf("%w: only image files are allowed", domain.ErrInvalidInput)
	}
	if len(photo.Data) == 0 {
		return ProfileResponse{}, fmt.Errorf("%w: file is required", domain.ErrInvalidInput)
	}
	if int64(len(photo.Data)) > s.cfg.MaxPhotoBytes {
		return ProfileResponse{}, fmt.Errorf("%w: photo exceeds %d bytes", domain.ErrInvalidInput, s.cfg.MaxPhotoBytes)
	}

	photoURL, err := s.files.Save(ctx, "profiles", "profile-"+uuid.NewString()+ext, photo.Data)
	if err != nil {
		return ProfileResponse{}, fmt.Errorf("%w: store photo: %v", domain.ErrStorageUnavailable, err)
	}
	updated, err := s.profiles.Update(ctx, ports.UpdateProfileParams{
		UserID:    userID,
		PhotoURL:  &photoURL,
		UpdatedAt: s.nowFn(),
	})
	if err != nil {
		return ProfileResponse{}, err
	}
	_ = s.cache.Delete(ctx, cacheKeyProfile(updated.Username))
	return s.loadProfileResponse(ctx, userID)
}

// ViewProfile resolves a profile by username and applies the visibility
// gate. A lookup miss surfaces as not-found before the gate is consulted;
// a gate denial never reveals profile content.
func (s *Service) ViewProfile(ctx context.Context, username string, viewer domain.ViewerContext) (PublicProfileResponse, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if err := domain.ValidateUsername(username); err != nil {
		return PublicProfileResponse{}, err
	}
	profile, err := s.cachedProfileByUsername(ctx, username)
	if err != nil {
		return PublicProfileResponse{}, err
	}

	switch domain.CanView(profile.Visibility, profile.UserID, viewer) {
	case domain.ViewAllowed:
	case domain.ViewDeniedMustLogin:
		return PublicProfileResponse{}, fmt.Errorf("%w: please login to view this profile", domain.ErrUnauthorized)
	default:
		return PublicProfileResponse{}, fmt.Errorf("%w: this profile is private", domain.ErrForbidden)
	}

	user, err := s.users.GetByID(ctx, profile.UserID)
	if err != nil {
		return PublicProfileResponse{}, err
	}
	skills, err := s.skills.ListByUserID(ctx, profile.UserID)
	if err != nil {
		return PublicProfileResponse{}, err
	}
	projects, err := s.projects.ListByUserID(ctx, profile.UserID)
	if err != nil {
		return PublicProfileResponse{}, err
	}

	return PublicProfileResponse{
		Username:    profile.Username,
		Name:        user.Name,
		Bio:         profile.Bio,
		Interests:   profile.Interests,
		Contact:     profile.Contact,
		PhotoURL:    profile.PhotoURL,
		Skills:      toSkillViews(skills),
		Projects:    toProjectViews(projects),
		MemberSince: profile.CreatedAt,
		IsOwner:     viewer.IsOwner(profile.UserID),
	}, nil
}

// Directory lists approved students scoped to the viewer: anonymous viewers
// see public profiles, authenticated students additionally see
// university-visible ones, admins see everything. The viewer's own entry is
// always present.
func (s *Service) Directory(ctx context.Context, viewer domain.ViewerContext, limit, offset int) ([]DirectoryEntryView, error) {
	if limit <= 0 || limit > s.cfg.DirectoryPageSize {
		limit = s.cfg.DirectoryPageSize
	}
	if offset < 0 {
		offset = 0
	}

	visibilities := []domain.Visibility{domain.VisibilityPublic}
	if viewer.IsAdmin() {
		visibilities = []domain.Visibility{domain.VisibilityPublic, domain.VisibilityUniversity, domain.VisibilityPrivate}
	} else if viewer.Authenticated {
		visibilities = []domain.Visibility{domain.VisibilityPublic, domain.VisibilityUniversity}
	}

	var includeOwner *uuid.UUID
	if viewer.Authenticated && !viewer.IsAdmin() {
		owner := viewer.ViewerID
		includeOwner = &owner
	}

	entries, err := s.profiles.ListDirectory(ctx, visibilities, includeOwner, limit, offset)
	if err != nil {
		return nil, err
	}
	views := make([]DirectoryEntryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, DirectoryEntryView{
			Username:   e.Username,
			Name:       e.Name,
			Bio:        e.Bio,
			PhotoURL:   e.PhotoURL,
			Visibility: e.Visibility,
		})
	}
	return views, nil
}

func (s *Service) loadProfileResponse(ctx context.Context, userID uuid.UUID) (ProfileResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return ProfileResponse{}, err
	}
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return ProfileResponse{}, err
	}
	skills, err := s.skills.ListByUserID(ctx, userID)
	if err != nil {
		return ProfileResponse{}, err
	}
	projects, err := s.projects.ListByUserID(ctx, userID)
	if err != nil {
		return ProfileResponse{}, err
	}
	return ProfileResponse{
		UserID:          user.UserID,
		Username:        profile.Username,
		Name:            user.Name,
		Email:           user.Email,
		Bio:             profile.Bio,
		Interests:       profile.Interests,
		Contact:         profile.Contact,
		PhotoURL:        profile.PhotoURL,
		Visibility:      profile.Visibility,
		FlaggedAttempts: profile.FlaggedAttempts,
		Skills:          toSkillViews(skills),
		Projects:        toProjectViews(projects),
		MemberSince:     user.CreatedAt,
	}, nil
}

// cachedProfileByUsername serves profile lookups from Redis with a short
// TTL; writers delete the key, so a stale entry lives at most one TTL after
// an uncoordinated write. The banned-word set is deliberately never cached.
func (s *Service) cachedProfileByUsername(ctx context.Context, username string) (domain.Profile, error) {
	key := cacheKeyProfile(username)
	if raw, err := s.cache.Get(ctx, key); err == nil && raw != "" {
		var cached domain.Profile
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return cached, nil
		}
	}
	profile, err := s.profiles.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Profile{}, domain.ErrNotFound
		}
		return domain.Profile{}, err
	}
	if raw, err := json.Marshal(profile); err == nil {
		_ = s.cache.Set(ctx, key, string(raw), s.cfg.ProfileCacheTTL)
	}
	return profile, nil
}

func (s *Service) invalidateProfileCache(ctx context.Context, userID uuid.UUID) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return
	}
	_ = s.cache.Delete(ctx, cacheKeyProfile(profile.Username))
}

func toSkillViews(skills []domain.Skill) []SkillView {
	views := make([]SkillView, 0, len(skills))
	for _, sk := range skills {
		views = append(views, SkillView{Name: sk.Name, Level: sk.Level, AddedAt: sk.AddedAt})
	}
	return views
}

func toProjectViews(projects []domain.Project) []ProjectView {
	views := make([]ProjectView, 0, len(projects))
	for _, p := range projects {
		views = append(views, ProjectView{
			Name:        p.Name,
			Description: p.Description,
			GitHubLink:  p.GitHubLink,
			LiveLink:    p.LiveLink,
			AddedAt:     p.AddedAt,
		})
	}
	return views
}

func trimNonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
