package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/flexprice/invoicer/internal/domain/invoice"
	ierr "github.com/flexprice/invoicer/internal/errors"
	"github.com/flexprice/invoicer/internal/logger"
	"github.com/flexprice/invoicer/internal/postgres"
	"github.com/flexprice/invoicer/internal/types"
	sqlxtypes "github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"
)

// Schema creates the invoices table; applied by cmd/migrate
//
//go:embed schema.sql
var Schema string

const (
	pqUniqueViolation = "23505"

	invoiceColumns = `id, invoice_number, issue_date, from_party, to_party, items,
		subtotal, tax_rate, tax_amount, discount_rate, discount_amount, total,
		created_at, updated_at`
)

type invoiceRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewInvoiceRepository(db *postgres.DB, logger *logger.Logger) invoice.Repository {
	return &invoiceRepository{db: db, logger: logger}
}

// invoiceRow is the table shape; parties and items are stored as jsonb
type invoiceRow struct {
	ID             string             `db:"id"`
	InvoiceNumber  string             `db:"invoice_number"`
	IssueDate      sql.NullTime       `db:"issue_date"`
	FromParty      sqlxtypes.JSONText `db:"from_party"`
	ToParty        sqlxtypes.JSONText `db:"to_party"`
	Items          sqlxtypes.JSONText `db:"items"`
	Subtotal       invoice.Number     `db:"subtotal"`
	TaxRate        invoice.Number     `db:"tax_rate"`
	TaxAmount      invoice.Number     `db:"tax_amount"`
	DiscountRate   invoice.Number     `db:"discount_rate"`
	DiscountAmount invoice.Number     `db:"discount_amount"`
	Total          invoice.Number     `db:"total"`
	CreatedAt      time.Time          `db:"created_at"`
	UpdatedAt      time.Time          `db:"updated_at"`
}

func toRow(inv *invoice.Invoice) (*invoiceRow, error) {
	from, err := json.Marshal(inv.From)
	if err != nil {
		return nil, err
	}
	to, err := json.Marshal(inv.To)
	if err != nil {
		return nil, err
	}
	items := inv.Items
	if items == nil {
		items = []invoice.LineItem{}
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}

	row := &invoiceRow{
		ID:             inv.ID,
		InvoiceNumber:  inv.InvoiceNumber,
		FromParty:      from,
		ToParty:        to,
		Items:          itemsJSON,
		Subtotal:       inv.Subtotal,
		TaxRate:        inv.TaxRate,
		TaxAmount:      inv.TaxAmount,
		DiscountRate:   inv.DiscountRate,
		DiscountAmount: inv.DiscountAmount,
		Total:          inv.Total,
		CreatedAt:      inv.CreatedAt,
		UpdatedAt:      inv.UpdatedAt,
	}
	if inv.IssueDate != nil {
		row.IssueDate = sql.NullTime{Time: *inv.IssueDate, Valid: true}
	}
	return row, nil
}

func (r *invoiceRow) toDomain() (*invoice.Invoice, error) {
	inv := &invoice.Invoice{
		ID:             r.ID,
		InvoiceNumber:  r.InvoiceNumber,
		Subtotal:       r.Subtotal,
		TaxRate:        r.TaxRate,
		TaxAmount:      r.TaxAmount,
		DiscountRate:   r.DiscountRate,
		DiscountAmount: r.DiscountAmount,
		Total:          r.Total,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
	if r.IssueDate.Valid {
		d := r.IssueDate.Time
		inv.IssueDate = &d
	}
	if err := r.FromParty.Unmarshal(&inv.From); err != nil {
		return nil, fmt.Errorf("unmarshal from_party: %w", err)
	}
	if err := r.ToParty.Unmarshal(&inv.To); err != nil {
		return nil, fmt.Errorf("unmarshal to_party: %w", err)
	}
	if err := r.Items.Unmarshal(&inv.Items); err != nil {
		return nil, fmt.Errorf("unmarshal items: %w", err)
	}
	return inv, nil
}

func (r *invoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	row, err := toRow(inv)
	if err != nil {
		return ierr.WithError(err).WithHint("Failed to encode invoice").Mark(ierr.ErrValidation)
	}

	query := `
	INSERT INTO invoices (` + invoiceColumns + `) VALUES (
		:id, :invoice_number, :issue_date, :from_party, :to_party, :items,
		:subtotal, :tax_rate, :tax_amount, :discount_rate, :discount_amount, :total,
		:created_at, :updated_at
	)`

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, row); err != nil {
		return r.writeError(err, inv)
	}
	return nil
}

func (r *invoiceRepository) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`

	var row invoiceRow
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.WithError(err).
				WithHintf("Invoice %s not found", id).
				WithReportableDetails(map[string]any{"invoice_id": id}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).WithHint("Failed to get invoice").Mark(ierr.ErrDatabase)
	}

	inv, err := row.toDomain()
	if err != nil {
		return nil, ierr.WithError(err).WithHint("Stored invoice is corrupt").Mark(ierr.ErrDatabase)
	}
	return inv, nil
}

func (r *invoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	row, err := toRow(inv)
	if err != nil {
		return ierr.WithError(err).WithHint("Failed to encode invoice").Mark(ierr.ErrValidation)
	}

	query := `
	UPDATE invoices SET
		invoice_number = :invoice_number,
		issue_date = :issue_date,
		from_party = :from_party,
		to_party = :to_party,
		items = :items,
		subtotal = :subtotal,
		tax_rate = :tax_rate,
		tax_amount = :tax_amount,
		discount_rate = :discount_rate,
		discount_amount = :discount_amount,
		total = :total,
		updated_at = :updated_at
	WHERE id = :id`

	result, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, row)
	if err != nil {
		return r.writeError(err, inv)
	}
	return r.requireAffected(result, inv.ID)
}

func (r *invoiceRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.GetQuerier(ctx).ExecContext(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return ierr.WithError(err).WithHint("Failed to delete invoice").Mark(ierr.ErrDatabase)
	}
	return r.requireAffected(result, id)
}

func (r *invoiceRepository) List(ctx context.Context, filter *types.InvoiceFilter) ([]*invoice.Invoice, error) {
	if filter == nil {
		filter = types.NewInvoiceFilter()
	}

	where, args := buildWhere(filter)
	query := fmt.Sprintf(`SELECT %s FROM invoices%s ORDER BY created_at %s, id %s`,
		invoiceColumns, where, orderDirection(filter), orderDirection(filter))
	if !filter.IsUnlimited() {
		args = append(args, filter.GetLimit(), filter.GetOffset())
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	var rows []invoiceRow
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, ierr.WithError(err).WithHint("Failed to list invoices").Mark(ierr.ErrDatabase)
	}

	invoices := make([]*invoice.Invoice, 0, len(rows))
	for i := range rows {
		inv, err := rows[i].toDomain()
		if err != nil {
			return nil, ierr.WithError(err).WithHint("Stored invoice is corrupt").Mark(ierr.ErrDatabase)
		}
		invoices = append(invoices, inv)
	}
	return invoices, nil
}

func (r *invoiceRepository) Count(ctx context.Context, filter *types.InvoiceFilter) (int, error) {
	if filter == nil {
		filter = types.NewInvoiceFilter()
	}

	where, args := buildWhere(filter)
	var count int
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &count, `SELECT COUNT(*) FROM invoices`+where, args...); err != nil {
		return 0, ierr.WithError(err).WithHint("Failed to count invoices").Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *invoiceRepository) GetLatest(ctx context.Context) (*invoice.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices ORDER BY created_at DESC, id DESC LIMIT 1`

	var row invoiceRow
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &row, query); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.WithError(err).WithHint("No invoices yet").Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).WithHint("Failed to get latest invoice").Mark(ierr.ErrDatabase)
	}

	inv, err := row.toDomain()
	if err != nil {
		return nil, ierr.WithError(err).WithHint("Stored invoice is corrupt").Mark(ierr.ErrDatabase)
	}
	return inv, nil
}

func (r *invoiceRepository) writeError(err error, inv *invoice.Invoice) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return ierr.WithError(err).
			WithHintf("Invoice number %s already exists", inv.InvoiceNumber).
			WithReportableDetails(map[string]any{"invoice_number": inv.InvoiceNumber}).
			Mark(ierr.ErrAlreadyExists)
	}
	return ierr.WithError(err).WithHint("Failed to save invoice").Mark(ierr.ErrDatabase)
}

func (r *invoiceRepository) requireAffected(result sql.Result, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	if n == 0 {
		return ierr.NewErrorf("invoice %s not found", id).
			WithHintf("Invoice %s not found", id).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

// buildWhere renders the search clause. The term matches invoice number,
// issuer name and recipient name case-insensitively.
func buildWhere(filter *types.InvoiceFilter) (string, []interface{}) {
	term := filter.SearchTerm()
	if term == "" {
		return "", nil
	}
	pattern := "%" + escapeLike(term) + "%"
	return ` WHERE (invoice_number ILIKE $1 OR from_party->>'name' ILIKE $1 OR to_party->>'name' ILIKE $1)`,
		[]interface{}{pattern}
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func orderDirection(filter *types.InvoiceFilter) string {
	if filter.GetOrder() == types.OrderAsc {
		return "ASC"
	}
	return "DESC"
}
