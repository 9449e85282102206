package database

import (
	"database/sql"
	"time"

	"github.com/segmentio/ksuid"
)

// Table Structure:
//
// CREATE TABLE IF NOT EXISTS users (
// 	id CHAR(27) NOT NULL UNIQUE,
// 	fullname VARCHAR(255) NOT NULL,
// 	email VARCHAR(255) NOT NULL UNIQUE,
// 	phone VARCHAR(30) NOT NULL,
// 	password_hash VARCHAR(255) NOT NULL,
// 	user_role VARCHAR(20) NOT NULL,
// 	bio TEXT DEFAULT NULL,
// 	skills TEXT DEFAULT NULL,
// 	resume_id CHAR(27) DEFAULT NULL,
// 	resume_name VARCHAR(255) DEFAULT NULL,
// 	avatar_id CHAR(27) DEFAULT NULL,
// 	created_at TIMESTAMP NOT NULL,
// 	updated_at TIMESTAMP NOT NULL,
// 	PRIMARY KEY(id)
// );
// CREATE UNIQUE INDEX users_email_idx ON users (lower(email));

// CREATE TABLE IF NOT EXISTS company (
// 	id CHAR(27) NOT NULL UNIQUE,
// 	name VARCHAR(255) NOT NULL,
// 	description TEXT DEFAULT NULL,
// 	url VARCHAR(255) DEFAULT NULL,
// 	location VARCHAR(255) DEFAULT NULL,
// 	phone VARCHAR(30) DEFAULT NULL,
// 	email VARCHAR(255) DEFAULT NULL,
// 	logo_id CHAR(27) DEFAULT NULL,
// 	slug VARCHAR(255) NOT NULL,
// 	created_by CHAR(27) NOT NULL REFERENCES users (id),
// 	created_at TIMESTAMP NOT NULL,
// 	updated_at TIMESTAMP NOT NULL,
// 	PRIMARY KEY(id)
// );
// CREATE INDEX company_created_by_idx ON company (created_by);

// CREATE TABLE IF NOT EXISTS job (
// 	id CHAR(27) NOT NULL UNIQUE,
// 	title VARCHAR(255) NOT NULL,
// 	description TEXT NOT NULL,
// 	salary VARCHAR(100) NOT NULL,
// 	location VARCHAR(255) NOT NULL,
// 	job_type VARCHAR(50) NOT NULL,
// 	company_id CHAR(27) NOT NULL REFERENCES company (id),
// 	created_by CHAR(27) NOT NULL REFERENCES users (id),
// 	slug VARCHAR(255) NOT NULL,
// 	created_at TIMESTAMP NOT NULL,
// 	PRIMARY KEY(id)
// );
// CREATE INDEX job_company_id_idx ON job (company_id);
// CREATE INDEX job_created_by_idx ON job (created_by);

// CREATE TABLE IF NOT EXISTS application (
// 	id CHAR(27) NOT NULL UNIQUE,
// 	user_id CHAR(27) NOT NULL REFERENCES users (id),
// 	job_id CHAR(27) NOT NULL REFERENCES job (id),
// 	created_at TIMESTAMP NOT NULL,
// 	PRIMARY KEY(id)
// );
// concurrent duplicate applies race between check and insert, the index is the authority
// CREATE UNIQUE INDEX application_user_job_idx ON application (user_id, job_id);

// CREATE TABLE IF NOT EXISTS image (
// 	id CHAR(27) NOT NULL UNIQUE,
// 	bytes BYTEA NOT NULL,
// 	media_type VARCHAR(100) NOT NULL,
// 	file_name VARCHAR(255) DEFAULT NULL,
// 	created_at TIMESTAMP NOT NULL,
// 	PRIMARY KEY(id)
// );

// GetDbConn tries to establish a connection to postgres and return the connection handler
func GetDbConn(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	err = db.Ping()
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(20)
	db.SetConnMaxLifetime(5 * time.Minute)
	return db, nil
}

// CloseDbConn closes db conn
func CloseDbConn(conn *sql.DB) {
	conn.Close()
}

type Media struct {
	Bytes     []byte
	MediaType string
	FileName  string
}

func SaveMedia(conn *sql.DB, media Media) (string, error) {
	mediaID, err := ksuid.NewRandom()
	if err != nil {
		return "", err
	}
	_, err = conn.Exec(
		`INSERT INTO image (id, bytes, media_type, file_name, created_at) VALUES ($1, $2, $3, $4, NOW())`,
		mediaID.String(),
		media.Bytes,
		media.MediaType,
		media.FileName,
	)
	if err != nil {
		return "", err
	}
	return mediaID.String(), nil
}

func GetMediaByID(conn *sql.DB, mediaID string) (Media, error) {
	var m Media
	var fileName sql.NullString
	row := conn.QueryRow(
		`SELECT bytes, media_type, file_name
		FROM image
		WHERE id = $1`, mediaID)
	err := row.Scan(&m.Bytes, &m.MediaType, &fileName)
	if err != nil {
		return Media{}, err
	}
	if fileName.Valid {
		m.FileName = fileName.String
	}
	return m, nil
}
