package log

import (
	"fmt"

	"go.uber.org/zap"
)

// toFields converts a loosely-typed key/value list to zap fields. A bare
// error becomes zap.Error, a bare zap.Field passes through, and everything
// else is consumed pairwise. An unpaired trailing value keeps its position
// as the key so it is not silently dropped.
func toFields(args ...any) []zap.Field {
	if len(args) == 0 {
		return nil
	}

	fields := make([]zap.Field, 0, len(args)/2+1)

	for i := 0; i < len(args); {
		switch v := args[i].(type) {
		case zap.Field:
			fields = append(fields, v)
			i++
			continue
		case error:
			fields = append(fields, zap.Error(v))
			i++
			continue
		}

		if i == len(args)-1 {
			fields = append(fields, zap.Any(fmt.Sprintf("arg#%d", i), args[i]))
			break
		}

		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", args[i])
		}
		fields = append(fields, zap.Any(key, args[i+1]))
		i += 2
	}

	return fields
}
