package model

import (
	"github.com/burugo/thing"
)

// CADFile maps a stored file to its owning user. Filename is the sanitized
// client-visible name; Filepath is the server-internal storage path and is
// never serialized.
type CADFile struct {
	thing.BaseModel
	Filename string `json:"filename" db:"filename"`
	Filepath string `json:"-" db:"filepath"`
	UserID   int64  `json:"user_id" db:"user_id"`
}

func (f *CADFile) TableName() string {
	return "cad_files"
}

var FileDB *thing.Thing[*CADFile]

// FileInit initializes FileDB during InitDB.
func FileInit() error {
	var err error
	FileDB, err = thing.Use[*CADFile]()
	return err
}

// InsertFile records ownership of a stored file. Rows are immutable after
// insert; there is no update or delete path.
func InsertFile(filename, filepath string, userID int64) (*CADFile, error) {
	file := &CADFile{
		Filename: filename,
		Filepath: filepath,
		UserID:   userID,
	}
	if err := FileDB.Save(file); err != nil {
		return nil, err
	}
	return file, nil
}

// ListFilesByOwner returns the owner's files newest first. The id tiebreak
// keeps same-second uploads in stable insertion order.
func ListFilesByOwner(userID int64) ([]*CADFile, error) {
	return FileDB.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Fetch(0, 1000)
}

// GetFileForOwner resolves a file only when it belongs to userID. A file
// owned by someone else yields ErrRecordNotFound, indistinguishable from a
// missing row.
func GetFileForOwner(fileID, userID int64) (*CADFile, error) {
	if fileID == 0 {
		return nil, ErrRecordNotFound
	}
	files, err := FileDB.Where("id = ? AND user_id = ?", fileID, userID).Fetch(0, 1)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrRecordNotFound
	}
	return files[0], nil
}
