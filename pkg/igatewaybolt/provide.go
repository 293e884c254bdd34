/*
 * Copyright (c) 2023-present Sigma-Soft, Ltd.
 */

package igatewaybolt

import (
	"os"
	"path/filepath"

	bolt "go.etcd.io/bbolt"

	"github.com/voedger/triggers/pkg/igateway"
	"github.com/voedger/triggers/pkg/schemas"
)

type ParamsType struct {
	// path to the database file, the directory is created if absent
	DBPath string
}

// IBoltDriver is a persistent gateway driver over a bbolt database
type IBoltDriver interface {
	igateway.IGatewayDriver
	Close() error
}

func Provide(params ParamsType, sch *schemas.Cache) (IBoltDriver, error) {
	if err := os.MkdirAll(filepath.Dir(params.DBPath), 0755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(params.DBPath, fileMode_rw_rw_rw_, bolt.DefaultOptions)
	if err != nil {
		return nil, err
	}
	if err := initDB(db); err != nil {
		db.Close()
		return nil, err
	}
	return &boltDriver{db: db, schemas: sch}, nil
}
