package storage

import "errors"

// Сентинельные ошибки слоя хранения.
var (
	// ErrAlreadyExists возвращается при попытке создать запись,
	// которая уже есть в справочнике.
	ErrAlreadyExists = errors.New("record already exists")
)
