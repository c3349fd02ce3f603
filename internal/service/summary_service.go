package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/dto"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/models"
	appErrors "github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/errors"
)

type summaryReportRepository interface {
	ListForDate(ctx context.Context, date string, groupID, campusID string, scope models.AccessScope) ([]models.DailyReportDetail, error)
}

type summaryGroupRepository interface {
	List(ctx context.Context, filter models.GroupFilter, scope models.AccessScope) ([]models.GroupDetail, int, error)
	FindByID(ctx context.Context, id string) (*models.GroupDetail, error)
}

type summaryStudentRepository interface {
	ListByGroup(ctx context.Context, groupID string) ([]models.Student, error)
}

// SummaryQuery captures the parameters of a summary request.
type SummaryQuery struct {
	Date     string
	GroupID  string
	CampusID string
	Strict   bool
}

// SummaryService aggregates per-date report completeness across groups.
type SummaryService struct {
	reports  summaryReportRepository
	groups   summaryGroupRepository
	students summaryStudentRepository
	cache    *CacheService
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewSummaryService constructs the summary service.
func NewSummaryService(reports summaryReportRepository, groups summaryGroupRepository, students summaryStudentRepository, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *SummaryService {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SummaryService{reports: reports, groups: groups, students: students, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// Summarize builds the completeness summary for one date. Every active
// student inside the visible scope appears exactly once, reports or not. The
// second return value reports whether the response was served from cache.
func (s *SummaryService) Summarize(ctx context.Context, scope models.AccessScope, query SummaryQuery) (*dto.SummaryResponse, bool, error) {
	date := query.Date
	if date == "" {
		date = time.Now().Format(models.ReportDateLayout)
	}

	cacheKey := fmt.Sprintf("summary:%s:g=%s:c=%s:sg=%s:sc=%s:strict=%t",
		date, query.GroupID, query.CampusID, scope.GroupID, scope.CampusID, query.Strict)
	if s.cache.Enabled() {
		var cached dto.SummaryResponse
		hit, err := s.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			s.logger.Warn("summary cache read failed", zap.String("key", cacheKey), zap.Error(err))
		} else if hit {
			return &cached, true, nil
		}
	}

	groups, err := s.visibleGroups(ctx, scope, query)
	if err != nil {
		return nil, false, err
	}

	reports, err := s.reports.ListForDate(ctx, date, query.GroupID, query.CampusID, scope)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load reports for summary")
	}
	byStudent := make(map[string]models.DailyReportDetail, len(reports))
	for _, report := range reports {
		byStudent[report.StudentID] = report
	}

	response := &dto.SummaryResponse{Date: date, Strict: query.Strict}
	for _, group := range groups {
		students, err := s.students.ListByGroup(ctx, group.ID)
		if err != nil {
			return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load students for summary")
		}

		groupSummary := dto.GroupSummary{GroupID: group.ID, GroupName: group.Name, CampusID: group.CampusID}
		for _, student := range students {
			status := dto.StudentReportStatus{
				StudentID:   student.ID,
				StudentName: student.FullName,
				GroupID:     group.ID,
			}
			if report, ok := byStudent[student.ID]; ok {
				status.HasReport = true
				status.IsComplete = report.Complete(query.Strict)
			}
			switch {
			case !status.HasReport:
				groupSummary.NotStarted++
			case status.IsComplete:
				groupSummary.Complete++
			default:
				groupSummary.Incomplete++
			}
			response.Students = append(response.Students, status)
		}
		response.Complete += groupSummary.Complete
		response.Incomplete += groupSummary.Incomplete
		response.NotStarted += groupSummary.NotStarted
		response.Groups = append(response.Groups, groupSummary)
	}

	sort.Slice(response.Students, func(i, j int) bool {
		if response.Students[i].GroupID != response.Students[j].GroupID {
			return response.Students[i].GroupID < response.Students[j].GroupID
		}
		return response.Students[i].StudentName < response.Students[j].StudentName
	})

	if s.cache.Enabled() {
		if err := s.cache.Set(ctx, cacheKey, response, s.cacheTTL); err != nil {
			s.logger.Warn("summary cache write failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}
	return response, false, nil
}

func (s *SummaryService) visibleGroups(ctx context.Context, scope models.AccessScope, query SummaryQuery) ([]models.GroupDetail, error) {
	if query.GroupID != "" {
		group, err := s.groups.FindByID(ctx, query.GroupID)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "group not found")
		}
		if scope.GroupID != "" && group.ID != scope.GroupID {
			return nil, appErrors.Clone(appErrors.ErrOutOfScope, "group outside caller scope")
		}
		if scope.CampusID != "" && group.CampusID != scope.CampusID {
			return nil, appErrors.Clone(appErrors.ErrOutOfScope, "group outside caller campus")
		}
		return []models.GroupDetail{*group}, nil
	}

	active := true
	filter := models.GroupFilter{CampusID: query.CampusID, Active: &active}
	groups, err := listAllGroups(ctx, s.groups, filter, scope)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load groups for summary")
	}
	return groups, nil
}

// listAllGroups walks every page of the group listing. The repository caps a
// page at 100 rows, so a single call would drop groups past the first page.
func listAllGroups(ctx context.Context, repo summaryGroupRepository, filter models.GroupFilter, scope models.AccessScope) ([]models.GroupDetail, error) {
	filter.PageSize = 100
	var all []models.GroupDetail
	for page := 1; ; page++ {
		filter.Page = page
		groups, total, err := repo.List(ctx, filter, scope)
		if err != nil {
			return nil, err
		}
		all = append(all, groups...)
		if len(groups) == 0 || len(all) >= total {
			return all, nil
		}
	}
}
