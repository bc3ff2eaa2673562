package datasets_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-school-insights/datasets"
)

func TestLoadSQLWithMock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT \* FROM students`).WillReturnRows(
		sqlmock.NewRows([]string{"student_id", "score", "attendance", "behavior", "dropout"}).
			AddRow(int64(1), 88.5, 0.95, int64(1), int64(0)).
			AddRow(int64(2), []byte("42.0"), 0.5, int64(3), int64(1)),
	)
	mock.ExpectQuery(`SELECT \* FROM teachers`).WillReturnRows(
		sqlmock.NewRows([]string{"teacher_id", "name"}).AddRow(int64(10), "Dee"),
	)
	mock.ExpectQuery(`SELECT \* FROM payments`).WillReturnRows(
		sqlmock.NewRows([]string{"payment_id", "month", "amount"}).
			AddRow(int64(100), "2024-01", nil),
	)

	store, err := datasets.LoadSQL(context.Background(), db)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	students, err := store.ReportAll(datasets.TableStudents)
	require.NoError(t, err)
	require.Len(t, students, 2)

	score, _ := students[1].Get("score")
	f, ok := score.Float()
	require.True(t, ok)
	require.Equal(t, 42.0, f)

	payments, err := store.ReportAll(datasets.TablePayments)
	require.NoError(t, err)
	body, err := json.Marshal(payments)
	require.NoError(t, err)
	require.JSONEq(t, `[{"payment_id":100,"month":"2024-01","amount":null}]`, string(body))
}

func TestLoadSQLQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT \* FROM students`).WillReturnError(errors.New("relation does not exist"))

	_, err = datasets.LoadSQL(context.Background(), db)
	require.ErrorContains(t, err, "querying table students")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadSQLSQLite(t *testing.T) {
	db, err := sql.Open(datasets.DriverSQLite, ":memory:")
	require.NoError(t, err)
	defer db.Close()
	// every :memory: connection is its own database
	db.SetMaxOpenConns(1)

	stmts := []string{
		`CREATE TABLE students (student_id INTEGER, score REAL, attendance REAL, behavior INTEGER, dropout INTEGER)`,
		`INSERT INTO students VALUES (1, 90.0, 0.9, 1, 0), (2, 30.0, 0.4, 4, 1)`,
		`CREATE TABLE teachers (teacher_id INTEGER, name TEXT)`,
		`INSERT INTO teachers VALUES (7, 'Fay')`,
		`CREATE TABLE payments (payment_id INTEGER, month TEXT, amount REAL)`,
		`INSERT INTO payments VALUES (1, '2024-01', 10.5), (2, '2024-02', NULL)`,
	}
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err, stmt)
	}

	store, err := datasets.LoadSQL(context.Background(), db)
	require.NoError(t, err)

	teachers, err := store.ReportAll(datasets.TableTeachers)
	require.NoError(t, err)
	body, err := json.Marshal(teachers)
	require.NoError(t, err)
	require.Equal(t, `[{"teacher_id":7,"name":"Fay"}]`, string(body))

	payments, err := store.Table(datasets.TablePayments)
	require.NoError(t, err)
	amounts, err := payments.Column("amount")
	require.NoError(t, err)
	require.Len(t, amounts, 2)
	require.Equal(t, 10.5, amounts[0].Interface())
	require.True(t, amounts[1].IsNull())
}

func TestOpenSQLRejectsUnknownDriver(t *testing.T) {
	_, err := datasets.OpenSQL(context.Background(), "oracle", "dsn")
	require.Error(t, err)
}
