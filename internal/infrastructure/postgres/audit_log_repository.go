package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Masterminds/squirrel"
	"github.com/klauspost/compress/zstd"

	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

const (
	compressionNone = "none"
	compressionZstd = "zstd"

	// Los cambios por encima de este tamaño se guardan comprimidos en changes_compressed.
	auditCompressThreshold = 10 * 1024
)

type zstdCodec struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

var auditCodec = sync.OnceValues(func() (*zstdCodec, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	return &zstdCodec{enc: enc, dec: dec}, nil
})

// AuditLogRepo auditoría sobre PostgreSQL con compresión zstd de cambios grandes.
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

// Create inserta el registro; comprime Changes si supera el umbral.
func (r *AuditLogRepo) Create(ctx context.Context, l *entity.AuditLog) error {
	changes := []byte(l.Changes)
	var compressed []byte
	algo := compressionNone
	if len(changes) > auditCompressThreshold {
		codec, err := auditCodec()
		if err != nil {
			return err
		}
		compressed = codec.enc.EncodeAll(changes, nil)
		changes = nil
		algo = compressionZstd
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO audit_logs (id, company_id, user_id, action, entity, entity_id, changes, changes_compressed, compression_algo, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		l.ID, l.CompanyID, nullable(l.UserID), l.Action, l.Entity, l.EntityID,
		nullableJSON(changes), compressed, algo, l.Timestamp,
	)
	if err != nil {
		return mapWriteError("insert audit log", err)
	}
	return nil
}

// List devuelve registros más recientes primero; descomprime los que lo requieran.
func (r *AuditLogRepo) List(ctx context.Context, f repository.AuditLogFilter) ([]*entity.AuditLog, error) {
	b := psql.Select(
		"id", "company_id", "COALESCE(user_id::text, '')", "action", "entity", "entity_id",
		"changes", "changes_compressed", "compression_algo", "timestamp",
	).From("audit_logs").Where(squirrel.Eq{"company_id": f.CompanyID})
	if f.Entity != "" {
		b = b.Where(squirrel.Eq{"entity": f.Entity})
	}
	if f.EntityID != "" {
		b = b.Where(squirrel.Eq{"entity_id": f.EntityID})
	}
	sql, args, err := applyPage(b.OrderBy("timestamp DESC"), f.Limit, f.Offset).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list audit logs: %w", err)
	}
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	var list []*entity.AuditLog
	for rows.Next() {
		var (
			l          entity.AuditLog
			changes    []byte
			compressed []byte
			algo       string
		)
		if err := rows.Scan(&l.ID, &l.CompanyID, &l.UserID, &l.Action, &l.Entity, &l.EntityID,
			&changes, &compressed, &algo, &l.Timestamp); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		if algo == compressionZstd && len(compressed) > 0 {
			codec, err := auditCodec()
			if err != nil {
				return nil, err
			}
			changes, err = codec.dec.DecodeAll(compressed, nil)
			if err != nil {
				return nil, fmt.Errorf("decompress audit changes: %w", err)
			}
		}
		l.Changes = json.RawMessage(changes)
		list = append(list, &l)
	}
	return list, rows.Err()
}

func nullableJSON(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
