package mapping

import (
	"github.com/SscSPs/splitbalance/internal/core/domain"
	"github.com/SscSPs/splitbalance/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelExpense converts a domain Expense to its expense row and line rows.
func ToModelExpense(d domain.Expense) (models.Expense, []models.ExpenseLine) {
	lines := make([]models.ExpenseLine, len(d.Lines))
	for i, l := range d.Lines {
		lines[i] = models.ExpenseLine{
			ExpenseID:     d.ExpenseID,
			LineNo:        i,
			ParticipantID: l.ParticipantID,
			Amount:        l.Amount,
			Spec:          l.Spec,
		}
	}
	return models.Expense{
		ExpenseID:    d.ExpenseID,
		GroupID:      d.GroupID,
		Description:  d.Description,
		PayerID:      d.PayerID,
		Amount:       d.Total.Amount,
		CurrencyCode: d.Total.Currency,
		SplitType:    string(d.SplitType),
		ExpenseDate:  d.ExpenseDate,
		IsSettlement: d.IsSettlement,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}, lines
}

// ToDomainExpense assembles a domain Expense from its row and lines ordered by
// line number. The split rule is rebuilt from the stored specs.
func ToDomainExpense(m models.Expense, lines []models.ExpenseLine) domain.Expense {
	splitType := domain.SplitType(m.SplitType)
	domainLines := make([]domain.SplitLine, len(lines))
	specs := make([]decimal.Decimal, len(lines))
	for i, l := range lines {
		domainLines[i] = domain.SplitLine{ParticipantID: l.ParticipantID, Amount: l.Amount, Spec: l.Spec}
		specs[i] = l.Spec
	}
	return domain.Expense{
		ExpenseID:    m.ExpenseID,
		GroupID:      m.GroupID,
		Description:  m.Description,
		PayerID:      m.PayerID,
		Total:        domain.NewMoney(m.Amount, m.CurrencyCode),
		Rule:         domain.RuleFromSpecs(splitType, specs),
		SplitType:    splitType,
		Lines:        domainLines,
		ExpenseDate:  m.ExpenseDate,
		IsSettlement: m.IsSettlement,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
