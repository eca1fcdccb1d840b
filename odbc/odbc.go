// Package main implements the kom2 ODBC driver: a C-ABI shared library
// translating a restricted SQL dialect into calls against a remote
// inventory HTTP+JSON API. It holds no business logic itself — every
// entry point below resolves a handle via internal/handle, delegates to
// the relevant internal package, and converts the result back into an
// SQLRETURN plus diagnostic records. Keeping the cgo ABI layer thin and
// the internal packages cgo-free is what makes them independently
// testable with plain `go test`.
//
// Build as a shared library:
//
//	go build -buildmode=c-shared -o kom2.so .
package main

/*
#include <stdlib.h>
#include <string.h>

typedef void* SQLHANDLE;
typedef SQLHANDLE SQLHENV;
typedef SQLHANDLE SQLHDBC;
typedef SQLHANDLE SQLHSTMT;
typedef SQLHANDLE SQLHDESC;
typedef short SQLSMALLINT;
typedef unsigned short SQLUSMALLINT;
typedef int SQLINTEGER;
typedef unsigned int SQLUINTEGER;
typedef unsigned char SQLUCHAR;
typedef char SQLCHAR;
typedef long SQLLEN;
typedef unsigned long SQLULEN;
typedef void* SQLPOINTER;
typedef SQLSMALLINT SQLRETURN;

#define SQL_SUCCESS 0
#define SQL_SUCCESS_WITH_INFO 1
#define SQL_ERROR -1
#define SQL_INVALID_HANDLE -2
#define SQL_NO_DATA 100

#define SQL_HANDLE_ENV 1
#define SQL_HANDLE_DBC 2
#define SQL_HANDLE_STMT 3
#define SQL_HANDLE_DESC 4

#define SQL_NULL_HANDLE 0

#define SQL_ATTR_ODBC_VERSION 200
#define SQL_ATTR_CONNECTION_POOLING 201
#define SQL_OV_ODBC3 3

#define SQL_ATTR_APP_ROW_DESC 10010
#define SQL_ATTR_APP_PARAM_DESC 10011
#define SQL_ATTR_IMP_ROW_DESC 10012
#define SQL_ATTR_IMP_PARAM_DESC 10013

#define SQL_PARAM_INPUT 1

#define SQL_C_CHAR 1
#define SQL_VARCHAR 12
#define SQL_INTEGER 4

#define SQL_NO_NULLS 0
#define SQL_NULLABLE 1

#define SQL_NULL_DATA -1
#define SQL_NTS -3

#define SQL_COMMIT 0
#define SQL_ROLLBACK 1

#define SQL_DRIVER_NOPROMPT 0

#define SQL_DIAG_NUMBER 2
#define SQL_DIAG_ROW_COUNT 3
#define SQL_DIAG_SQLSTATE 4
#define SQL_DIAG_NATIVE 5
#define SQL_DIAG_MESSAGE_TEXT 6
#define SQL_DIAG_CLASS_ORIGIN 8
#define SQL_DIAG_SUBCLASS_ORIGIN 9
#define SQL_DIAG_CONNECTION_NAME 10
#define SQL_DIAG_SERVER_NAME 11
*/
import "C"

import (
	"context"
	"unsafe"

	"github.com/kom2/kom2/internal/bootstrap"
	"github.com/kom2/kom2/internal/diag"
	"github.com/kom2/kom2/internal/handle"
	"github.com/kom2/kom2/internal/query"
	"github.com/kom2/kom2/internal/sqlparse"
	"github.com/kom2/kom2/internal/version"
)

// registry is the process-wide handle table (C2): one driver process, one
// registry.
var registry = handle.New()

// goString converts a nullable C byte pointer to a Go string. When
// lengthOrNTS is SQL_NTS (-3), the string is NUL-terminated; otherwise it
// is exactly lengthOrNTS bytes.
func goString(p *C.SQLUCHAR, lengthOrNTS C.SQLSMALLINT) string {
	if p == nil {
		return ""
	}
	if lengthOrNTS == C.SQL_NTS {
		return C.GoString((*C.char)(unsafe.Pointer(p)))
	}
	if lengthOrNTS < 0 {
		return ""
	}
	return C.GoStringN((*C.char)(unsafe.Pointer(p)), C.int(lengthOrNTS))
}

// writeOutBytes copies up to bufLen-1 bytes of s into dst and NUL-terminates
// it. Callers must already know bufLen > 0 and dst != nil.
func writeOutBytes(dst *C.SQLUCHAR, bufLen int, s string) {
	n := len(s)
	if n > bufLen-1 {
		n = bufLen - 1
	}
	if n > 0 {
		C.memcpy(unsafe.Pointer(dst), unsafe.Pointer(unsafe.StringData(s)), C.size_t(n))
	}
	*(*C.char)(unsafe.Pointer(uintptr(unsafe.Pointer(dst)) + uintptr(n))) = 0
}

// outputString implements the one truncation-aware string copy-out
// protocol every outbound string parameter follows : it
// writes at most bufLen-1 bytes plus NUL into dst (when non-nil), reports
// the full untruncated length via lenPtr, and returns SQL_SUCCESS_WITH_INFO
// only when data was actually lost to a too-small non-nil buffer.
func outputString(dst *C.SQLUCHAR, bufLen C.SQLSMALLINT, lenPtr *C.SQLSMALLINT, s string) C.SQLRETURN {
	out, textLen, truncated := diag.Truncate(s, int(bufLen), dst != nil)
	if dst != nil && bufLen > 0 {
		writeOutBytes(dst, int(bufLen), out)
	}
	if lenPtr != nil {
		*lenPtr = C.SQLSMALLINT(textLen)
	}
	if truncated {
		return C.SQL_SUCCESS_WITH_INFO
	}
	return C.SQL_SUCCESS
}

// diagStoreFor resolves handleType/handle to the diag.Store it carries.
func diagStoreFor(handleType C.SQLSMALLINT, h C.SQLHANDLE) (*diag.Store, bool) {
	id := uintptr(h)
	switch handleType {
	case C.SQL_HANDLE_ENV:
		env, ok := registry.Env(id)
		if !ok {
			return nil, false
		}
		return &env.Diag, true
	case C.SQL_HANDLE_DBC:
		dbc, ok := registry.DBC(id)
		if !ok {
			return nil, false
		}
		return &dbc.Diag, true
	case C.SQL_HANDLE_STMT:
		stmt, ok := registry.STMT(id)
		if !ok {
			return nil, false
		}
		return &stmt.Diag, true
	case C.SQL_HANDLE_DESC:
		desc, ok := registry.DESC(id)
		if !ok {
			return nil, false
		}
		return &desc.Diag, true
	default:
		return nil, false
	}
}

// SQLAllocHandle allocates an ODBC handle of the requested type (C2, spec
// section 4.2).
func SQLAllocHandle(handleType C.SQLSMALLINT, inputHandle C.SQLHANDLE, outputHandlePtr *C.SQLHANDLE) C.SQLRETURN {
	switch handleType {
	case C.SQL_HANDLE_ENV:
		env := registry.AllocEnv()
		*outputHandlePtr = C.SQLHANDLE(unsafe.Pointer(env.ID))
		return C.SQL_SUCCESS

	case C.SQL_HANDLE_DBC:
		dbc, ok := registry.AllocDBC(uintptr(inputHandle))
		if !ok {
			*outputHandlePtr = C.SQLHANDLE(unsafe.Pointer(uintptr(0)))
			return C.SQL_ERROR
		}
		*outputHandlePtr = C.SQLHANDLE(unsafe.Pointer(dbc.ID))
		return C.SQL_SUCCESS

	case C.SQL_HANDLE_STMT:
		stmt, ok := registry.AllocSTMT(uintptr(inputHandle))
		if !ok {
			*outputHandlePtr = C.SQLHANDLE(unsafe.Pointer(uintptr(0)))
			return C.SQL_ERROR
		}
		*outputHandlePtr = C.SQLHANDLE(unsafe.Pointer(stmt.ID))
		return C.SQL_SUCCESS

	case C.SQL_HANDLE_DESC:
		desc, ok := registry.AllocDESC(uintptr(inputHandle))
		if !ok {
			*outputHandlePtr = C.SQLHANDLE(unsafe.Pointer(uintptr(0)))
			return C.SQL_ERROR
		}
		*outputHandlePtr = C.SQLHANDLE(unsafe.Pointer(desc.ID))
		return C.SQL_SUCCESS

	default:
		*outputHandlePtr = C.SQLHANDLE(unsafe.Pointer(uintptr(0)))
		return C.SQL_ERROR
	}
}

// SQLFreeHandle releases a handle and cascades to its children (C2, spec
// section 4.2).
func SQLFreeHandle(handleType C.SQLSMALLINT, h C.SQLHANDLE) C.SQLRETURN {
	id := uintptr(h)
	var ok bool
	switch handleType {
	case C.SQL_HANDLE_ENV:
		ok = registry.FreeEnv(id)
	case C.SQL_HANDLE_DBC:
		ok = registry.FreeDBC(id)
	case C.SQL_HANDLE_STMT:
		ok = registry.FreeSTMT(id)
	case C.SQL_HANDLE_DESC:
		ok = registry.FreeDESC(id)
	default:
		return C.SQL_INVALID_HANDLE
	}
	if !ok {
		return C.SQL_INVALID_HANDLE
	}
	return C.SQL_SUCCESS
}

// SQLSetEnvAttr sets an environment attribute. Only SQL_ATTR_ODBC_VERSION
// is meaningfully supported; SQL_ATTR_CONNECTION_POOLING is an explicitly
// unimplemented optional feature .
func SQLSetEnvAttr(environmentHandle C.SQLHENV, attribute C.SQLINTEGER, valuePtr C.SQLPOINTER, stringLength C.SQLINTEGER) C.SQLRETURN {
	env, ok := registry.Env(uintptr(environmentHandle))
	if !ok {
		return C.SQL_INVALID_HANDLE
	}

	switch attribute {
	case C.SQL_ATTR_ODBC_VERSION:
		env.ODBCVersion = int32(uintptr(valuePtr))
		return C.SQL_SUCCESS
	case C.SQL_ATTR_CONNECTION_POOLING:
		env.Diag.Push(diag.New("HYC00", 0, "Unsupported attribute"))
		return C.SQL_ERROR
	default:
		return C.SQL_SUCCESS
	}
}

// connectDBC runs the shared bootstrap sequence (C4/C5/C6/C7) for both
// SQLDriverConnect and SQLConnect. The correlation ID is minted inside
// bootstrap.Connect itself, so every line the logger wrote during connect
// — including lines logged before this function ever sees a *Result — is
// already tagged with it; this just copies it onto the DBC handle too.
func connectDBC(dbc *handle.Connection, connStr string) C.SQLRETURN {
	result, logger, rec := bootstrap.Connect(context.Background(), connStr)
	dbc.Logger = logger
	dbc.CorrelationID = logger.CorrelationID()
	if rec != nil {
		dbc.Diag.Push(rec)
		return C.SQL_ERROR
	}
	dbc.Client = result.Client
	dbc.Categories = result.Categories
	dbc.Connected = true
	return C.SQL_SUCCESS
}

// SQLDriverConnect connects using a full "key=value;..." connection string
// (C4/C5/C6/C7).
func SQLDriverConnect(connectionHandle C.SQLHDBC, windowHandle C.SQLPOINTER,
	inConnectionString *C.SQLUCHAR, stringLength1 C.SQLSMALLINT,
	outConnectionString *C.SQLUCHAR, bufferLength C.SQLSMALLINT, stringLength2Ptr *C.SQLSMALLINT,
	driverCompletion C.SQLUSMALLINT) C.SQLRETURN {

	dbc, ok := registry.DBC(uintptr(connectionHandle))
	if !ok {
		return C.SQL_INVALID_HANDLE
	}

	connStr := goString(inConnectionString, stringLength1)
	ret := connectDBC(dbc, connStr)

	outRet := outputString(outConnectionString, bufferLength, stringLength2Ptr, connStr)
	if ret == C.SQL_SUCCESS && outRet == C.SQL_SUCCESS_WITH_INFO {
		return outRet
	}
	return ret
}

// SQLConnect connects using the three-part DSN/user/password form. This
// driver has no DSN registry, so serverName is treated as the full
// connection string, matching the convenience SQLDriverConnect already
// provides for hosts that prefer the shorter call.
func SQLConnect(connectionHandle C.SQLHDBC, serverName *C.SQLUCHAR, nameLength1 C.SQLSMALLINT,
	userName *C.SQLUCHAR, nameLength2 C.SQLSMALLINT, authentication *C.SQLUCHAR, nameLength3 C.SQLSMALLINT) C.SQLRETURN {

	dbc, ok := registry.DBC(uintptr(connectionHandle))
	if !ok {
		return C.SQL_INVALID_HANDLE
	}

	connStr := goString(serverName, nameLength1)
	if user := goString(userName, nameLength2); user != "" {
		connStr += ";username=" + user
	}
	if pass := goString(authentication, nameLength3); pass != "" {
		connStr += ";password=" + pass
	}
	return connectDBC(dbc, connStr)
}

// SQLGetDiagRec returns the Nth diagnostic record for a handle (C1, spec
// section 4.1).
func SQLGetDiagRec(handleType C.SQLSMALLINT, h C.SQLHANDLE, recNumber C.SQLSMALLINT,
	sqlState *C.SQLUCHAR, nativeErrorPtr *C.SQLINTEGER, messageText *C.SQLUCHAR,
	bufferLength C.SQLSMALLINT, textLengthPtr *C.SQLSMALLINT) C.SQLRETURN {

	store, ok := diagStoreFor(handleType, h)
	if !ok {
		return C.SQL_INVALID_HANDLE
	}
	if recNumber <= 0 {
		return C.SQL_ERROR
	}

	rec, total, ok := store.At(int(recNumber))
	if !ok {
		if int(recNumber) > total {
			if sqlState != nil {
				writeOutBytes(sqlState, 6, "")
			}
			if nativeErrorPtr != nil {
				*nativeErrorPtr = 0
			}
			if messageText != nil && bufferLength > 0 {
				writeOutBytes(messageText, int(bufferLength), "")
			}
			if textLengthPtr != nil {
				*textLengthPtr = 0
			}
			return C.SQL_NO_DATA
		}
		return C.SQL_ERROR
	}

	if sqlState != nil {
		writeOutBytes(sqlState, 6, rec.SQLState)
	}
	if nativeErrorPtr != nil {
		*nativeErrorPtr = C.SQLINTEGER(rec.Native)
	}
	return outputString(messageText, bufferLength, textLengthPtr, rec.Message)
}

// SQLGetDiagField returns one field of a diagnostic record by numeric
// identifier (C1).
func SQLGetDiagField(handleType C.SQLSMALLINT, h C.SQLHANDLE, recNumber C.SQLSMALLINT,
	diagIdentifier C.SQLSMALLINT, diagInfoPtr C.SQLPOINTER, bufferLength C.SQLSMALLINT,
	stringLengthPtr *C.SQLSMALLINT) C.SQLRETURN {

	store, ok := diagStoreFor(handleType, h)
	if !ok {
		return C.SQL_INVALID_HANDLE
	}

	switch diagIdentifier {
	case C.SQL_DIAG_NUMBER:
		_, total, _ := store.At(1)
		if diagInfoPtr != nil {
			*(*C.SQLINTEGER)(unsafe.Pointer(diagInfoPtr)) = C.SQLINTEGER(total)
		}
		return C.SQL_SUCCESS
	case C.SQL_DIAG_CLASS_ORIGIN:
		return outputString((*C.SQLUCHAR)(unsafe.Pointer(diagInfoPtr)), bufferLength, stringLengthPtr, diag.ClassOrigin)
	case C.SQL_DIAG_SUBCLASS_ORIGIN:
		return outputString((*C.SQLUCHAR)(unsafe.Pointer(diagInfoPtr)), bufferLength, stringLengthPtr, diag.SubclassOrigin)
	case C.SQL_DIAG_CONNECTION_NAME:
		return outputString((*C.SQLUCHAR)(unsafe.Pointer(diagInfoPtr)), bufferLength, stringLengthPtr, diag.ConnectionName)
	case C.SQL_DIAG_SERVER_NAME:
		return outputString((*C.SQLUCHAR)(unsafe.Pointer(diagInfoPtr)), bufferLength, stringLengthPtr, diag.ServerName)
	}

	if recNumber <= 0 {
		return C.SQL_ERROR
	}
	rec, total, ok := store.At(int(recNumber))
	if !ok {
		if int(recNumber) > total {
			return C.SQL_NO_DATA
		}
		return C.SQL_ERROR
	}

	switch diagIdentifier {
	case C.SQL_DIAG_SQLSTATE:
		return outputString((*C.SQLUCHAR)(unsafe.Pointer(diagInfoPtr)), bufferLength, stringLengthPtr, rec.SQLState)
	case C.SQL_DIAG_NATIVE:
		if diagInfoPtr != nil {
			*(*C.SQLINTEGER)(unsafe.Pointer(diagInfoPtr)) = C.SQLINTEGER(rec.Native)
		}
		return C.SQL_SUCCESS
	case C.SQL_DIAG_MESSAGE_TEXT:
		return outputString((*C.SQLUCHAR)(unsafe.Pointer(diagInfoPtr)), bufferLength, stringLengthPtr, rec.Message)
	default:
		return C.SQL_ERROR
	}
}

// SQLGetStmtAttr reports a statement attribute. This driver never hands out
// real descriptor handles for the four IMP/APP ROW/PARAM descriptor
// attributes: instead it writes a fixed pseudo-pointer sentinel, confirmed
// against every one of the four attribute codes by the original test
// suite, so client libraries that cache a descriptor handle keep working.
func SQLGetStmtAttr(statementHandle C.SQLHSTMT, attribute C.SQLINTEGER, valuePtr C.SQLPOINTER,
	bufferLength C.SQLINTEGER, stringLengthPtr *C.SQLINTEGER) C.SQLRETURN {

	_, ok := registry.STMT(uintptr(statementHandle))
	if !ok {
		return C.SQL_INVALID_HANDLE
	}

	switch attribute {
	case C.SQL_ATTR_IMP_ROW_DESC, C.SQL_ATTR_APP_ROW_DESC, C.SQL_ATTR_IMP_PARAM_DESC, C.SQL_ATTR_APP_PARAM_DESC:
		if valuePtr != nil {
			*(*C.SQLLEN)(unsafe.Pointer(valuePtr)) = C.SQLLEN(0xDEADBEEF)
		}
		if stringLengthPtr != nil {
			*stringLengthPtr = 8
		}
		return C.SQL_SUCCESS
	default:
		return C.SQL_ERROR
	}
}

// SQLPrepare stores SQL text on a statement for later execution; parsing
// and running it both happen lazily at SQLExecute (C8/C9).
func SQLPrepare(statementHandle C.SQLHSTMT, statementText *C.SQLUCHAR, textLength C.SQLINTEGER) C.SQLRETURN {
	stmt, ok := registry.STMT(uintptr(statementHandle))
	if !ok {
		return C.SQL_INVALID_HANDLE
	}
	stmt.PreparedSQL = goString(statementText, C.SQLSMALLINT(textLength))
	stmt.Cursor = nil
	return C.SQL_SUCCESS
}

// SQLExecute parses the prepared SQL text and runs it against the
// inventory API (C8/C9), replacing any previous result set.
func SQLExecute(statementHandle C.SQLHSTMT) C.SQLRETURN {
	stmt, ok := registry.STMT(uintptr(statementHandle))
	if !ok {
		return C.SQL_INVALID_HANDLE
	}
	dbc, ok := registry.DBC(stmt.DBCID)
	if !ok {
		return C.SQL_INVALID_HANDLE
	}

	q, err := sqlparse.Parse(stmt.PreparedSQL)
	if err != nil {
		stmt.Diag.Push(diag.New("42000", 0, err.Error()))
		stmt.Cursor = nil
		return C.SQL_ERROR
	}

	cursor, rec := query.Execute(context.Background(), dbc.Client, dbc.Categories, q)
	if rec != nil {
		stmt.Diag.Push(rec)
		stmt.Cursor = nil
		return C.SQL_ERROR
	}

	stmt.Cursor = cursor
	stmt.BoundCols = nil
	return C.SQL_SUCCESS
}

// SQLBindParameter validates and stashes the single input parameter this
// driver supports: only SQL_PARAM_INPUT with SQL_C_CHAR is accepted. No
// value substitution into the query text happens — the grammar's literal
// already carries the comparison value, so this is a minimal binding stub.
func SQLBindParameter(statementHandle C.SQLHSTMT, parameterNumber C.SQLUSMALLINT,
	inputOutputType C.SQLSMALLINT, valueType C.SQLSMALLINT, parameterType C.SQLSMALLINT,
	columnSize C.SQLULEN, decimalDigits C.SQLSMALLINT, parameterValuePtr C.SQLPOINTER,
	bufferLength C.SQLLEN, strLenOrIndPtr *C.SQLLEN) C.SQLRETURN {

	stmt, ok := registry.STMT(uintptr(statementHandle))
	if !ok {
		return C.SQL_INVALID_HANDLE
	}

	if inputOutputType != C.SQL_PARAM_INPUT || valueType != C.SQL_C_CHAR {
		stmt.Diag.Push(diag.New("HY000", 0, "Unsupported attribute"))
		return C.SQL_ERROR
	}

	if strLenOrIndPtr != nil && *strLenOrIndPtr == C.SQL_NULL_DATA {
		stmt.ParamBound = true
		stmt.ParamIsNull = true
		stmt.ParamValue = ""
		return C.SQL_SUCCESS
	}

	stmt.ParamBound = true
	stmt.ParamIsNull = false
	stmt.ParamValue = goString((*C.SQLUCHAR)(unsafe.Pointer(parameterValuePtr)), C.SQL_NTS)
	return C.SQL_SUCCESS
}

// SQLDescribeParam describes the single parameter marker this driver
// supports. Any parameter number other than 1 is an invalid descriptor
// index .
func SQLDescribeParam(statementHandle C.SQLHSTMT, parameterNumber C.SQLUSMALLINT,
	dataTypePtr *C.SQLSMALLINT, parameterSizePtr *C.SQLULEN, decimalDigitsPtr *C.SQLSMALLINT,
	nullablePtr *C.SQLSMALLINT) C.SQLRETURN {

	stmt, ok := registry.STMT(uintptr(statementHandle))
	if !ok {
		return C.SQL_INVALID_HANDLE
	}

	if parameterNumber != 1 {
		stmt.Diag.Push(diag.New("07009", 0, "Invalid descriptor index"))
		return C.SQL_ERROR
	}

	if dataTypePtr != nil {
		*dataTypePtr = C.SQL_VARCHAR
	}
	if parameterSizePtr != nil {
		*parameterSizePtr = 0
	}
	if decimalDigitsPtr != nil {
		*decimalDigitsPtr = 0
	}
	if nullablePtr != nil {
		*nullablePtr = C.SQL_NO_NULLS
	}
	return C.SQL_SUCCESS
}

// SQLNumResultCols reports the current result set's column count (C10).
func SQLNumResultCols(statementHandle C.SQLHSTMT, columnCountPtr *C.SQLSMALLINT) C.SQLRETURN {
	stmt, ok := registry.STMT(uintptr(statementHandle))
	if !ok {
		return C.SQL_INVALID_HANDLE
	}
	if columnCountPtr == nil {
		return C.SQL_SUCCESS
	}
	if stmt.Cursor == nil {
		*columnCountPtr = 0
	} else {
		*columnCountPtr = C.SQLSMALLINT(stmt.Cursor.NumCols())
	}
	return C.SQL_SUCCESS
}

// SQLDescribeCol reports one result column's metadata (C10).
func SQLDescribeCol(statementHandle C.SQLHSTMT, columnNumber C.SQLUSMALLINT,
	columnName *C.SQLUCHAR, bufferLength C.SQLSMALLINT, nameLengthPtr *C.SQLSMALLINT,
	dataTypePtr *C.SQLSMALLINT, columnSizePtr *C.SQLULEN, decimalDigitsPtr *C.SQLSMALLINT,
	nullablePtr *C.SQLSMALLINT) C.SQLRETURN {

	stmt, ok := registry.STMT(uintptr(statementHandle))
	if !ok {
		return C.SQL_INVALID_HANDLE
	}
	if stmt.Cursor == nil {
		return C.SQL_ERROR
	}
	col, ok := stmt.Cursor.ColumnAt(int(columnNumber))
	if !ok {
		return C.SQL_ERROR
	}

	if dataTypePtr != nil {
		*dataTypePtr = C.SQLSMALLINT(col.SQLType)
	}
	if columnSizePtr != nil {
		*columnSizePtr = C.SQLULEN(col.Size)
	}
	if decimalDigitsPtr != nil {
		*decimalDigitsPtr = C.SQLSMALLINT(col.DecimalDigits)
	}
	if nullablePtr != nil {
		*nullablePtr = C.SQLSMALLINT(col.Nullable)
	}
	return outputString(columnName, bufferLength, nameLengthPtr, col.Name)
}

// SQLBindCol associates a client buffer with a result column, read back on
// every subsequent SQLFetch (C10).
func SQLBindCol(statementHandle C.SQLHSTMT, columnNumber C.SQLUSMALLINT, targetType C.SQLSMALLINT,
	targetValuePtr C.SQLPOINTER, bufferLength C.SQLLEN, strLenOrIndPtr *C.SQLLEN) C.SQLRETURN {

	stmt, ok := registry.STMT(uintptr(statementHandle))
	if !ok {
		return C.SQL_INVALID_HANDLE
	}

	if targetValuePtr == nil {
		if stmt.BoundCols != nil {
			delete(stmt.BoundCols, int(columnNumber))
		}
		return C.SQL_SUCCESS
	}

	if stmt.BoundCols == nil {
		stmt.BoundCols = make(map[int]handle.BoundColumn)
	}
	stmt.BoundCols[int(columnNumber)] = handle.BoundColumn{
		TargetType:   int16(targetType),
		TargetPtr:    unsafe.Pointer(targetValuePtr),
		BufferLength: int64(bufferLength),
		IndicatorPtr: unsafe.Pointer(strLenOrIndPtr),
	}
	return C.SQL_SUCCESS
}

// SQLFetch advances the cursor one row and writes every bound column into
// its buffer (C10). SQL_NO_DATA once the cursor is exhausted.
func SQLFetch(statementHandle C.SQLHSTMT) C.SQLRETURN {
	stmt, ok := registry.STMT(uintptr(statementHandle))
	if !ok {
		return C.SQL_INVALID_HANDLE
	}
	if stmt.Cursor == nil {
		return C.SQL_NO_DATA
	}
	if !stmt.Cursor.Fetch() {
		return C.SQL_NO_DATA
	}

	truncated := false
	for colNumber, bound := range stmt.BoundCols {
		value, isNull, ok := stmt.Cursor.Value(colNumber)
		indPtr := (*C.SQLLEN)(bound.IndicatorPtr)
		if !ok || isNull {
			if indPtr != nil {
				*indPtr = C.SQL_NULL_DATA
			}
			continue
		}
		out, _, colTruncated := diag.Truncate(value, int(bound.BufferLength), bound.TargetPtr != nil)
		if bound.TargetPtr != nil && bound.BufferLength > 0 {
			writeOutBytes((*C.SQLUCHAR)(bound.TargetPtr), int(bound.BufferLength), out)
		}
		if colTruncated {
			truncated = true
		}
		if indPtr != nil {
			*indPtr = C.SQLLEN(len(value))
		}
	}
	if truncated {
		stmt.Diag.Push(diag.New("01004", 0, "String data, right truncated"))
		return C.SQL_SUCCESS_WITH_INFO
	}
	return C.SQL_SUCCESS
}

// SQLRowCount reports the current result set's total row count (C10).
func SQLRowCount(statementHandle C.SQLHSTMT, rowCountPtr *C.SQLLEN) C.SQLRETURN {
	stmt, ok := registry.STMT(uintptr(statementHandle))
	if !ok {
		return C.SQL_INVALID_HANDLE
	}
	if rowCountPtr == nil {
		return C.SQL_SUCCESS
	}
	if stmt.Cursor == nil {
		*rowCountPtr = 0
	} else {
		*rowCountPtr = C.SQLLEN(stmt.Cursor.RowCount())
	}
	return C.SQL_SUCCESS
}

// SQLTables lists categories as pseudo-tables (C11).
func SQLTables(statementHandle C.SQLHSTMT, catalogName *C.SQLUCHAR, nameLength1 C.SQLSMALLINT,
	schemaName *C.SQLUCHAR, nameLength2 C.SQLSMALLINT, tableName *C.SQLUCHAR, nameLength3 C.SQLSMALLINT,
	tableType *C.SQLUCHAR, nameLength4 C.SQLSMALLINT) C.SQLRETURN {

	stmt, ok := registry.STMT(uintptr(statementHandle))
	if !ok {
		return C.SQL_INVALID_HANDLE
	}
	dbc, ok := registry.DBC(stmt.DBCID)
	if !ok {
		return C.SQL_INVALID_HANDLE
	}

	filter := goString(tableName, nameLength3)
	stmt.Cursor = query.TablesCursor(dbc.Categories, filter)
	stmt.BoundCols = nil
	return C.SQL_SUCCESS
}

// SQLColumns lists the fixed column catalog for a table (C11).
func SQLColumns(statementHandle C.SQLHSTMT, catalogName *C.SQLUCHAR, nameLength1 C.SQLSMALLINT,
	schemaName *C.SQLUCHAR, nameLength2 C.SQLSMALLINT, tableName *C.SQLUCHAR, nameLength3 C.SQLSMALLINT,
	columnName *C.SQLUCHAR, nameLength4 C.SQLSMALLINT) C.SQLRETURN {

	stmt, ok := registry.STMT(uintptr(statementHandle))
	if !ok {
		return C.SQL_INVALID_HANDLE
	}

	table := goString(tableName, nameLength3)
	columnFilter := goString(columnName, nameLength4)
	stmt.Cursor = query.ColumnsCursor(table, columnFilter)
	stmt.BoundCols = nil
	return C.SQL_SUCCESS
}

// SQLEndTran always succeeds: this driver has no transactions (spec
// section 4.3/1's Non-goals).
func SQLEndTran(handleType C.SQLSMALLINT, h C.SQLHANDLE, completionType C.SQLSMALLINT) C.SQLRETURN {
	return C.SQL_SUCCESS
}

// VersionInfo writes the driver's fixed version string .
func VersionInfo(buf *C.SQLCHAR, length C.SQLINTEGER) C.SQLINTEGER {
	s := version.Load().String()
	n := len(s)
	if buf != nil && length > 0 {
		writeOutBytes((*C.SQLUCHAR)(unsafe.Pointer(buf)), int(length), s)
	}
	return C.SQLINTEGER(n)
}

func main() {}
