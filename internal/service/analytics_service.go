package service

import (
	"fmt"
	"math"
	"time"

	"pms-be-svc/internal/models"
	"pms-be-svc/internal/models/response"
	"pms-be-svc/internal/repository"
	"pms-be-svc/pkg/logger"

	"github.com/xuri/excelize/v2"
)

// AnalyticsService derives reporting from the payment and complaint stores.
// It is read-only: aggregates are recomputed on demand from row state, so
// they can never drift from the underlying tables.
type AnalyticsService interface {
	MonthlyReconciliation(buildingID uint, month models.MonthKey, now time.Time) (*response.MonthlyReconciliationResponse, error)
	RiskClassification() ([]*response.RenterRiskResponse, error)
	PaymentBehavior() ([]*response.PaymentBehaviorResponse, error)
	ExportReconciliationToExcel(buildingID uint, month models.MonthKey, now time.Time) ([]byte, string, error)
}

// analyticsService implements AnalyticsService
type analyticsService struct {
	analyticsRepo repository.AnalyticsRepository
	tenancyRepo   repository.TenancyRepository
	logger        *logger.Logger
}

// NewAnalyticsService creates a new instance of AnalyticsService
func NewAnalyticsService(analyticsRepo repository.AnalyticsRepository, tenancyRepo repository.TenancyRepository, logger *logger.Logger) AnalyticsService {
	return &analyticsService{
		analyticsRepo: analyticsRepo,
		tenancyRepo:   tenancyRepo,
		logger:        logger,
	}
}

// MonthlyReconciliation classifies every apartment in the building into
// exactly one reconciliation class for the month and sums collected against
// expected amounts. Overdue is decided against the supplied clock, never
// written back.
func (s *analyticsService) MonthlyReconciliation(buildingID uint, month models.MonthKey, now time.Time) (*response.MonthlyReconciliationResponse, error) {
	if _, err := s.tenancyRepo.GetBuildingByID(buildingID); err != nil {
		return nil, fmt.Errorf("building lookup: %w", err)
	}

	rows, err := s.analyticsRepo.GetReconciliationRows(buildingID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to load reconciliation rows: %w", err)
	}

	result := &response.MonthlyReconciliationResponse{
		BuildingID: buildingID,
		Month:      month.String(),
		Apartments: make([]response.ApartmentReconciliationRow, 0, len(rows)),
	}

	for _, row := range rows {
		class := classifyReconciliationRow(row, now)

		switch class {
		case response.ReconciliationClassVerified:
			result.VerifiedCount++
			if row.Amount != nil {
				result.CollectedAmount += *row.Amount
			}
		case response.ReconciliationClassPendingVerification:
			result.PendingVerificationCount++
		case response.ReconciliationClassPending:
			result.PendingCount++
		case response.ReconciliationClassOverdue:
			result.OverdueCount++
		case response.ReconciliationClassNoPayment:
			result.NoPaymentCount++
		}

		if row.RenterID != nil {
			result.ExpectedAmount += row.MonthlyRent
		}

		result.Apartments = append(result.Apartments, response.ApartmentReconciliationRow{
			ApartmentID:        row.ApartmentID,
			UnitNumber:         row.UnitNumber,
			RenterID:           row.RenterID,
			RenterName:         row.RenterName,
			RentAmount:         row.MonthlyRent,
			PaymentID:          row.PaymentID,
			PaymentAmount:      row.Amount,
			PaidAt:             row.PaidAt,
			ConfirmationStatus: row.ConfirmationStatus,
			Class:              class,
		})
	}

	result.CollectionRate = collectionRate(result.CollectedAmount, result.ExpectedAmount)

	s.logger.WithFields(map[string]interface{}{
		"building_id":     buildingID,
		"month":           month.String(),
		"apartments":      len(rows),
		"collected":       result.CollectedAmount,
		"expected":        result.ExpectedAmount,
		"collection_rate": result.CollectionRate,
	}).Info("Monthly reconciliation computed")

	return result, nil
}

// classifyReconciliationRow maps a joined apartment row onto exactly one
// reconciliation class
func classifyReconciliationRow(row *repository.ReconciliationRow, now time.Time) string {
	// Vacant apartments and apartments without a payment row both report no_payment
	if row.RenterID == nil || row.PaymentID == nil {
		return response.ReconciliationClassNoPayment
	}

	pastDue := row.DueDate != nil && now.After(*row.DueDate)

	if row.PaymentStatus == models.PaymentStatusPaid {
		switch row.ConfirmationStatus {
		case models.ConfirmationStatusVerified:
			return response.ReconciliationClassVerified
		case models.ConfirmationStatusRejected:
			// A rejected payment leaves the month unsettled
			if pastDue {
				return response.ReconciliationClassOverdue
			}
			return response.ReconciliationClassPending
		default:
			return response.ReconciliationClassPendingVerification
		}
	}

	if pastDue {
		return response.ReconciliationClassOverdue
	}
	return response.ReconciliationClassPending
}

// collectionRate returns collected/expected as a percentage rounded to one
// decimal, with zero expected yielding zero rather than NaN
func collectionRate(collected, expected int64) float64 {
	if expected == 0 {
		return 0
	}
	return math.Round(float64(collected)/float64(expected)*1000) / 10
}

// RiskClassification scores every renter with payment history on how often
// they settled after the due date. Renters without any payments are excluded
// rather than scored.
func (s *analyticsService) RiskClassification() ([]*response.RenterRiskResponse, error) {
	rows, err := s.analyticsRepo.GetRenterPaymentHistory()
	if err != nil {
		return nil, fmt.Errorf("failed to load payment history: %w", err)
	}

	results := make([]*response.RenterRiskResponse, 0)
	var current *response.RenterRiskResponse

	for _, row := range rows {
		if current == nil || current.RenterID != row.RenterID {
			current = &response.RenterRiskResponse{
				RenterID:   row.RenterID,
				RenterName: row.RenterName,
			}
			results = append(results, current)
		}

		current.TotalPayments++
		if row.PaidAt != nil && row.PaidAt.After(row.DueDate) {
			current.LatePayments++
		}
	}

	for _, r := range results {
		latePct := float64(r.LatePayments) / float64(r.TotalPayments) * 100
		r.LatePercentage = math.Round(latePct*10) / 10
		r.RiskCategory = riskCategory(latePct)
	}

	return results, nil
}

// riskCategory maps a late percentage onto the coarse risk buckets
func riskCategory(latePct float64) string {
	switch {
	case latePct > 50:
		return response.RiskCategoryHigh
	case latePct > 20:
		return response.RiskCategoryMedium
	default:
		return response.RiskCategoryLow
	}
}

// PaymentBehavior buckets every renter by their mean settlement delay over
// paid records. Early payments count as negative days and pull the mean down
// instead of being clamped to zero. The recommended action is advisory text
// for managers, not a control action.
func (s *analyticsService) PaymentBehavior() ([]*response.PaymentBehaviorResponse, error) {
	rows, err := s.analyticsRepo.GetRenterPaymentHistory()
	if err != nil {
		return nil, fmt.Errorf("failed to load payment history: %w", err)
	}

	type delayAcc struct {
		resp      *response.PaymentBehaviorResponse
		totalDays float64
	}

	results := make([]*response.PaymentBehaviorResponse, 0)
	var current *delayAcc

	for _, row := range rows {
		if row.PaidAt == nil {
			continue
		}

		if current == nil || current.resp.RenterID != row.RenterID {
			current = &delayAcc{
				resp: &response.PaymentBehaviorResponse{
					RenterID:   row.RenterID,
					RenterName: row.RenterName,
				},
			}
			results = append(results, current.resp)
		}

		current.resp.PaidPayments++
		current.totalDays += row.PaidAt.Sub(row.DueDate).Hours() / 24

		avg := current.totalDays / float64(current.resp.PaidPayments)
		current.resp.AvgDaysDelay = math.Round(avg*10) / 10
		current.resp.Behavior, current.resp.RecommendedAction = behaviorBucket(avg)
	}

	return results, nil
}

// behaviorBucket maps an average delay in days onto a behavior label and its
// advisory action text
func behaviorBucket(avgDays float64) (string, string) {
	switch {
	case avgDays < 0:
		return response.BehaviorEarlyPayer, "No action needed; consider for preferred renter programs"
	case avgDays <= 2:
		return response.BehaviorOnTime, "No action needed; continue routine monitoring"
	case avgDays <= 10:
		return response.BehaviorOccasionallyLate, "Send payment reminders before the due date"
	default:
		return response.BehaviorChronicallyLate, "Escalate to management review and consider a payment plan"
	}
}

// ExportReconciliationToExcel renders the monthly reconciliation as an
// Excel workbook and returns its bytes together with a generated filename
func (s *analyticsService) ExportReconciliationToExcel(buildingID uint, month models.MonthKey, now time.Time) ([]byte, string, error) {
	reconciliation, err := s.MonthlyReconciliation(buildingID, month, now)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.WithError(err).Error("Failed to close Excel file")
		}
	}()

	sheetName := "Reconciliation"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headers := []string{"No", "Unit", "Renter", "Rent", "Payment Amount", "Paid At", "Confirmation", "Class"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#D3D3D3"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err == nil {
		f.SetCellStyle(sheetName, "A1", "H1", headerStyle)
	}

	for i, row := range reconciliation.Apartments {
		rowNum := i + 2

		paidAt := ""
		if row.PaidAt != nil {
			paidAt = row.PaidAt.Format("2006-01-02 15:04")
		}
		var amount int64
		if row.PaymentAmount != nil {
			amount = *row.PaymentAmount
		}

		f.SetCellValue(sheetName, fmt.Sprintf("A%d", rowNum), i+1)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", rowNum), row.UnitNumber)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", rowNum), row.RenterName)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", rowNum), row.RentAmount)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", rowNum), amount)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", rowNum), paidAt)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", rowNum), row.ConfirmationStatus)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", rowNum), row.Class)
	}

	// Summary block under the table
	summaryRow := len(reconciliation.Apartments) + 3
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow), "Collected")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", summaryRow), reconciliation.CollectedAmount)
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow+1), "Expected")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", summaryRow+1), reconciliation.ExpectedAmount)
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow+2), "Collection Rate (%)")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", summaryRow+2), reconciliation.CollectionRate)

	for i := 1; i <= len(headers); i++ {
		col, _ := excelize.ColumnNumberToName(i)
		f.SetColWidth(sheetName, col, col, 18)
	}

	if f.GetSheetName(0) == "Sheet1" && sheetName != "Sheet1" {
		f.DeleteSheet("Sheet1")
	}

	filename := fmt.Sprintf("reconciliation_%d_%s.xlsx", buildingID, month.String())

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to write Excel file: %w", err)
	}

	return buffer.Bytes(), filename, nil
}
