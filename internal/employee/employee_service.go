package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"mime/multipart"
	"strings"
	"time"

	"employee-directory/internal/attachment"
	employeeerrors "employee-directory/internal/employee/errors"
	"employee-directory/internal/events"
	"employee-directory/internal/messaging/kafka"
	"employee-directory/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	EmployeeListCacheKey = "employees:all"
	employeeListCacheTTL = 10 * time.Minute
)

type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	store  attachment.Store
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, store attachment.Store, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, store, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	store attachment.Store,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		store:  store,
		outbox: outboxRepo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
		zap.Int("gallery_files", len(req.GalleryImages)),
	)

	if req.Resume == nil || req.ProfileImage == nil {
		return EmployeeResponse{}, employeeerrors.ErrAttachmentsRequired
	}
	skills := normalizeSkills(req.Skills)
	if len(skills) == 0 {
		return EmployeeResponse{}, employeeerrors.ErrSkillsRequired
	}
	dob, err := time.Parse(dateLayout, strings.TrimSpace(req.DOB))
	if err != nil {
		s.logger.Warn("create employee invalid dob", zap.String("dob", req.DOB), zap.Error(err))
		return EmployeeResponse{}, employeeerrors.ErrInvalidDOB
	}
	if err := s.validateUploads(req.Resume, req.ProfileImage, req.GalleryImages); err != nil {
		s.logger.Warn("create employee attachment rejected", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	var stored []string
	resumeRef, err := s.save(ctx, &stored, attachment.CategoryResume, req.Resume)
	if err != nil {
		s.reportOrphans(rid, "", stored, err)
		return EmployeeResponse{}, err
	}
	profileRef, err := s.save(ctx, &stored, attachment.CategoryProfileImage, req.ProfileImage)
	if err != nil {
		s.reportOrphans(rid, "", stored, err)
		return EmployeeResponse{}, err
	}
	gallery, err := s.saveGallery(ctx, &stored, req.GalleryImages)
	if err != nil {
		s.reportOrphans(rid, "", stored, err)
		return EmployeeResponse{}, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	empl := &Employee{
		ID:            uuid.New(),
		FullName:      strings.TrimSpace(req.FullName),
		Email:         normalizeEmail(req.Email),
		Phone:         strings.TrimSpace(req.Phone),
		DOB:           dob,
		Gender:        req.Gender,
		Skills:        pq.StringArray(skills),
		Department:    strings.TrimSpace(req.Department),
		Address:       strings.TrimSpace(req.Address),
		IsActive:      isActive,
		Resume:        resumeRef,
		ProfileImage:  profileRef,
		GalleryImages: pq.StringArray(gallery),
	}

	if err := s.persist(ctx, events.EmployeeProfileCreated, empl, func(qtx Repository) error {
		return qtx.Create(ctx, empl)
	}); err != nil {
		s.logger.Error("create employee persist failed", zap.String("request_id", rid), zap.Error(err))
		// Stored files are not rolled back, including on duplicate email.
		s.reportOrphans(rid, "", stored, err)
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.invalidateListCache(ctx)
	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
	)
	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	s.logger.Debug("get all employees requested")

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, EmployeeListCacheKey).Result(); err == nil {
			var resp []EmployeeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn("employee list cache read failed", zap.Error(err))
		}
	}

	v, err, _ := s.sf.Do(EmployeeListCacheKey, func() (interface{}, error) {
		empls, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(empls)
		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, EmployeeListCacheKey, jsonData, employeeListCacheTTL).Err(); err != nil {
					s.logger.Warn("employee list cache write failed", zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, err
	}

	return v.([]EmployeeResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	s.logger.Debug("get employee by id requested", zap.String("employee_id", id))
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn("get employee by id failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*empl), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update employee requested",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
		zap.Int("retained_gallery", len(req.ExistingGalleryImages)),
		zap.Int("new_gallery", len(req.GalleryImages)),
	)

	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	patch, err := newProfilePatch(req)
	if err != nil {
		return EmployeeResponse{}, err
	}
	if err := s.validateUploads(req.Resume, req.ProfileImage, req.GalleryImages); err != nil {
		s.logger.Warn("update employee attachment rejected", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn("update employee fetch existing failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	var stored []string
	resumeRef, err := s.save(ctx, &stored, attachment.CategoryResume, req.Resume)
	if err != nil {
		s.reportOrphans(rid, id, stored, err)
		return EmployeeResponse{}, err
	}
	profileRef, err := s.save(ctx, &stored, attachment.CategoryProfileImage, req.ProfileImage)
	if err != nil {
		s.reportOrphans(rid, id, stored, err)
		return EmployeeResponse{}, err
	}
	newGallery, err := s.saveGallery(ctx, &stored, req.GalleryImages)
	if err != nil {
		s.reportOrphans(rid, id, stored, err)
		return EmployeeResponse{}, err
	}

	plan := Reconcile(empl.Attachments(), DesiredAttachments{
		Resume:          resumeRef,
		ProfileImage:    profileRef,
		RetainedGallery: req.ExistingGalleryImages,
		NewGallery:      newGallery,
	})
	patch.applyTo(empl)
	empl.setAttachments(plan.Final)

	if err := s.persist(ctx, events.EmployeeProfileUpdated, empl, func(qtx Repository) error {
		return qtx.Update(ctx, empl)
	}); err != nil {
		s.logger.Error("update employee persist failed", zap.String("request_id", rid), zap.Error(err))
		s.reportOrphans(rid, id, stored, err)
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.invalidateListCache(ctx)
	s.deleteAttachments(ctx, rid, id, plan.ToDelete)
	s.logger.Info("update employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
		zap.Int("attachments_removed", len(plan.ToDelete)),
	)
	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete employee requested", zap.String("request_id", rid), zap.String("employee_id", id))

	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn("delete employee fetch existing failed", zap.String("employee_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := s.persist(ctx, events.EmployeeProfileDeleted, empl, func(qtx Repository) error {
		return qtx.Delete(ctx, id)
	}); err != nil {
		s.logger.Error("delete employee persist failed", zap.String("request_id", rid), zap.Error(err))
		return mapRepositoryError(err)
	}

	s.invalidateListCache(ctx)
	s.deleteAttachments(ctx, rid, id, empl.Attachments().Refs())
	s.logger.Info("delete employee success", zap.String("request_id", rid), zap.String("employee_id", id))
	return nil
}

// persist runs write and the matching outbox insert on one transaction.
func (s *service) persist(ctx context.Context, eventType string, empl *Employee, write func(Repository) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := write(s.repo.WithTx(tx)); err != nil {
		return err
	}

	if s.outbox != nil {
		rid := contextutil.GetRequestID(ctx)
		payload, err := json.Marshal(events.EmployeeProfileEvent{
			EventType:  eventType,
			RequestID:  rid,
			EmployeeID: empl.ID.String(),
			Email:      empl.Email,
			Department: empl.Department,
			IsActive:   empl.IsActive,
			OccurredAt: time.Now().UTC(),
		})
		if err != nil {
			return err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "employee",
			AggregateID:   empl.ID.String(),
			EventType:     eventType,
			Topic:         events.EmployeeProfileTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *service) validateUploads(resume, profile *multipart.FileHeader, gallery []*multipart.FileHeader) error {
	if resume != nil {
		if err := s.store.Validate(attachment.CategoryResume, []*multipart.FileHeader{resume}); err != nil {
			return err
		}
	}
	if profile != nil {
		if err := s.store.Validate(attachment.CategoryProfileImage, []*multipart.FileHeader{profile}); err != nil {
			return err
		}
	}
	if len(gallery) > 0 {
		return s.store.Validate(attachment.CategoryGalleryImage, gallery)
	}
	return nil
}

func (s *service) save(ctx context.Context, stored *[]string, category attachment.Category, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", nil
	}
	ref, err := s.store.Save(ctx, category, fh)
	if err != nil {
		return "", err
	}
	*stored = append(*stored, ref)
	return ref, nil
}

func (s *service) saveGallery(ctx context.Context, stored *[]string, files []*multipart.FileHeader) ([]string, error) {
	refs := make([]string, 0, len(files))
	for _, fh := range files {
		ref, err := s.save(ctx, stored, attachment.CategoryGalleryImage, fh)
		if err != nil {
			return nil, err
		}
		if ref != "" {
			refs = append(refs, ref)
		}
	}
	return refs, nil
}

func (s *service) deleteAttachments(ctx context.Context, rid, employeeID string, refs []string) {
	for _, ref := range refs {
		if err := s.store.Delete(ctx, ref); err != nil {
			s.logger.Error("attachment delete failed, file orphaned",
				zap.String("request_id", rid),
				zap.String("employee_id", employeeID),
				zap.String("ref", ref),
				zap.Error(err),
			)
		}
	}
}

func (s *service) reportOrphans(rid, employeeID string, refs []string, cause error) {
	if len(refs) == 0 {
		return
	}
	s.logger.Warn("stored attachments left without a profile",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID),
		zap.Strings("refs", refs),
		zap.Error(cause),
	)
}

func (s *service) invalidateListCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, EmployeeListCacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee list cache",
			zap.Error(err),
			zap.String("key", EmployeeListCacheKey),
		)
	}
}

func mapToResponse(empl Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:            empl.ID.String(),
		FullName:      empl.FullName,
		Email:         empl.Email,
		Phone:         empl.Phone,
		DOB:           empl.DOB.Format(dateLayout),
		Gender:        empl.Gender,
		Skills:        append([]string{}, empl.Skills...),
		Department:    empl.Department,
		Address:       empl.Address,
		IsActive:      empl.IsActive,
		Resume:        empl.Resume,
		ProfileImage:  empl.ProfileImage,
		GalleryImages: append([]string{}, empl.GalleryImages...),
		CreatedAt:     empl.CreatedAt,
		UpdatedAt:     empl.UpdatedAt,
	}
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, 0, len(empls))
	for _, e := range empls {
		res = append(res, mapToResponse(e))
	}
	return res
}
