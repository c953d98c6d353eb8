// Package proto declares the stormcore.accounts.v1.AccountService gRPC
// service. Messages travel as google.protobuf.Struct values; the typed
// request and response structs below convert to and from them.
package proto

import (
	"fmt"
	"math"
	"strconv"

	"google.golang.org/protobuf/types/known/structpb"
)

// Field names used on the wire.
const (
	FieldEmail        = "email"
	FieldPassword     = "password"
	FieldIdentifier   = "identifier"
	FieldID           = "id"
	FieldUsername     = "username"
	FieldJoinDate     = "join_date"
	FieldUmbrellaHash = "umbrella_hash"
	FieldLegacyHash   = "legacy_hash"
)

type CreateAccountRequest struct {
	Email    string
	Password string
}

type CreateAccountResponse struct {
	ID       int64
	Email    string
	Username string
	// JoinDate is "YYYY-MM-DD HH:MM:SS", UTC.
	JoinDate string
}

// ComputeHashesRequest asks for the umbrella verifier when Email is set and
// for the legacy verifier when Identifier is set.
type ComputeHashesRequest struct {
	Email      string
	Identifier string
	Password   string
}

type ComputeHashesResponse struct {
	UmbrellaHash string
	LegacyHash   string
}

func (r *CreateAccountRequest) ToStruct() *structpb.Struct {
	return stringStruct(map[string]string{
		FieldEmail:    r.Email,
		FieldPassword: r.Password,
	})
}

func (r *CreateAccountRequest) FromStruct(s *structpb.Struct) error {
	var err error
	if r.Email, err = stringField(s, FieldEmail); err != nil {
		return err
	}
	r.Password, err = stringField(s, FieldPassword)
	return err
}

func (r *CreateAccountResponse) ToStruct() *structpb.Struct {
	return stringStruct(map[string]string{
		FieldID:       strconv.FormatInt(r.ID, 10),
		FieldEmail:    r.Email,
		FieldUsername: r.Username,
		FieldJoinDate: r.JoinDate,
	})
}

func (r *CreateAccountResponse) FromStruct(s *structpb.Struct) error {
	var err error
	if r.ID, err = intField(s, FieldID); err != nil {
		return err
	}
	if r.Email, err = stringField(s, FieldEmail); err != nil {
		return err
	}
	if r.Username, err = stringField(s, FieldUsername); err != nil {
		return err
	}
	r.JoinDate, err = stringField(s, FieldJoinDate)
	return err
}

func (r *ComputeHashesRequest) ToStruct() *structpb.Struct {
	return stringStruct(map[string]string{
		FieldEmail:      r.Email,
		FieldIdentifier: r.Identifier,
		FieldPassword:   r.Password,
	})
}

func (r *ComputeHashesRequest) FromStruct(s *structpb.Struct) error {
	var err error
	if r.Email, err = stringField(s, FieldEmail); err != nil {
		return err
	}
	if r.Identifier, err = stringField(s, FieldIdentifier); err != nil {
		return err
	}
	r.Password, err = stringField(s, FieldPassword)
	return err
}

func (r *ComputeHashesResponse) ToStruct() *structpb.Struct {
	return stringStruct(map[string]string{
		FieldUmbrellaHash: r.UmbrellaHash,
		FieldLegacyHash:   r.LegacyHash,
	})
}

func (r *ComputeHashesResponse) FromStruct(s *structpb.Struct) error {
	var err error
	if r.UmbrellaHash, err = stringField(s, FieldUmbrellaHash); err != nil {
		return err
	}
	r.LegacyHash, err = stringField(s, FieldLegacyHash)
	return err
}

// stringStruct builds a Struct, leaving out empty values.
func stringStruct(fields map[string]string) *structpb.Struct {
	s := &structpb.Struct{Fields: make(map[string]*structpb.Value, len(fields))}
	for k, v := range fields {
		if v != "" {
			s.Fields[k] = structpb.NewStringValue(v)
		}
	}
	return s
}

// stringField returns the string stored under key; a missing key reads as "".
func stringField(s *structpb.Struct, key string) (string, error) {
	v, ok := s.GetFields()[key]
	if !ok {
		return "", nil
	}
	sv, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", fmt.Errorf("field %q must be a string", key)
	}
	return sv.StringValue, nil
}

// maxExactInt is the largest integer a float64 number value holds exactly.
const maxExactInt = 1 << 53

// intField reads an integer sent as a decimal string. Number values are
// accepted while they are exact.
func intField(s *structpb.Struct, key string) (int64, error) {
	v, ok := s.GetFields()[key]
	if !ok {
		return 0, fmt.Errorf("field %q is missing", key)
	}
	switch kind := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		n, err := strconv.ParseInt(kind.StringValue, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("field %q must be an integer: %w", key, err)
		}
		return n, nil
	case *structpb.Value_NumberValue:
		f := kind.NumberValue
		if f != math.Trunc(f) || math.Abs(f) > maxExactInt {
			return 0, fmt.Errorf("field %q must be an exact integer", key)
		}
		return int64(f), nil
	}
	return 0, fmt.Errorf("field %q must be an integer", key)
}
