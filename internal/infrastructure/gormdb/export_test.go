package gormdb

var IsDuplicateKey = isDuplicateKey
