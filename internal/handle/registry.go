// Package handle implements C1/C2: the ODBC handle registry. It tracks the
// four handle kinds (environment, connection, statement, descriptor)
// behind opaque uintptr IDs, each carrying its own diag.Store.
package handle

import (
	"sync"
	"unsafe"

	"github.com/kom2/kom2/internal/diag"
	"github.com/kom2/kom2/internal/inventory"
	"github.com/kom2/kom2/internal/komlog"
	"github.com/kom2/kom2/internal/query"
)

// BoundColumn is one SQLBindCol association: a client-owned buffer that
// SQLFetch writes a column's value into. The pointer fields name C memory
// (the caller's buffer), never Go memory, so holding them here across calls
// is safe.
type BoundColumn struct {
	TargetType   int16
	TargetPtr    unsafe.Pointer
	BufferLength int64
	IndicatorPtr unsafe.Pointer
}

// Kind identifies which of the four ODBC handle types an ID names.
type Kind int

const (
	KindEnv Kind = iota
	KindDBC
	KindSTMT
	KindDESC
)

// Environment is an allocated SQLHENV.
type Environment struct {
	ID          uintptr
	Diag        diag.Store
	ODBCVersion int32
}

// Connection is an allocated SQLHDBC: it owns the HTTP client, the category
// index built at connect time, and the logger for this session.
type Connection struct {
	ID            uintptr
	EnvID         uintptr
	Diag          diag.Store
	CorrelationID string

	Client     *inventory.Client
	Categories *inventory.CategoryIndex
	Logger     *komlog.Logger

	Connected bool
}

// Statement is an allocated SQLHSTMT: it owns the prepared/executed query
// text and, once executed, the result cursor.
type Statement struct {
	ID    uintptr
	DBCID uintptr
	Diag  diag.Store

	PreparedSQL string
	Cursor      *query.Cursor

	// ParamValue/ParamIsNull hold the single bound input parameter this
	// driver supports: SQLGetStmtAttr's fixed descriptor sentinel implies a
	// single-parameter descriptor model.
	ParamBound  bool
	ParamValue  string
	ParamIsNull bool

	BoundCols map[int]BoundColumn
}

// Descriptor is an allocated SQLHDESC. The driver never populates one with
// real field data: SQLGetStmtAttr's fixed pseudo-pointer sentinel
// short-circuits every attribute read before a descriptor's contents would
// matter, so this type carries only what SQLAllocHandle/SQLFreeHandle need
// to track it.
type Descriptor struct {
	ID    uintptr
	DBCID uintptr
	Diag  diag.Store
}

// Registry is the process-wide handle table. The zero value is not usable;
// construct with New.
type Registry struct {
	mu sync.RWMutex

	nextID uintptr

	envs  map[uintptr]*Environment
	dbcs  map[uintptr]*Connection
	stmts map[uintptr]*Statement
	descs map[uintptr]*Descriptor
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{
		nextID: 1,
		envs:   make(map[uintptr]*Environment),
		dbcs:   make(map[uintptr]*Connection),
		stmts:  make(map[uintptr]*Statement),
		descs:  make(map[uintptr]*Descriptor),
	}
}

func (r *Registry) allocID() uintptr {
	id := r.nextID
	r.nextID++
	return id
}

// AllocEnv allocates a new, parentless environment handle.
func (r *Registry) AllocEnv() *Environment {
	r.mu.Lock()
	defer r.mu.Unlock()
	env := &Environment{ID: r.allocID()}
	r.envs[env.ID] = env
	return env
}

// AllocDBC allocates a connection handle under envID. It returns false if
// envID does not name a live environment.
func (r *Registry) AllocDBC(envID uintptr) (*Connection, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.envs[envID]; !ok {
		return nil, false
	}
	dbc := &Connection{ID: r.allocID(), EnvID: envID}
	r.dbcs[dbc.ID] = dbc
	return dbc, true
}

// AllocSTMT allocates a statement handle under dbcID. It returns false if
// dbcID does not name a live connection.
func (r *Registry) AllocSTMT(dbcID uintptr) (*Statement, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.dbcs[dbcID]; !ok {
		return nil, false
	}
	stmt := &Statement{ID: r.allocID(), DBCID: dbcID}
	r.stmts[stmt.ID] = stmt
	return stmt, true
}

// AllocDESC allocates a descriptor handle under dbcID. It returns false if
// dbcID does not name a live connection.
func (r *Registry) AllocDESC(dbcID uintptr) (*Descriptor, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.dbcs[dbcID]; !ok {
		return nil, false
	}
	desc := &Descriptor{ID: r.allocID(), DBCID: dbcID}
	r.descs[desc.ID] = desc
	return desc, true
}

// Env looks up a live environment handle.
func (r *Registry) Env(id uintptr) (*Environment, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	env, ok := r.envs[id]
	return env, ok
}

// DBC looks up a live connection handle.
func (r *Registry) DBC(id uintptr) (*Connection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	dbc, ok := r.dbcs[id]
	return dbc, ok
}

// STMT looks up a live statement handle.
func (r *Registry) STMT(id uintptr) (*Statement, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stmt, ok := r.stmts[id]
	return stmt, ok
}

// DESC looks up a live descriptor handle.
func (r *Registry) DESC(id uintptr) (*Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	desc, ok := r.descs[id]
	return desc, ok
}

// FreeEnv releases an environment and every connection (and their
// statements/descriptors) allocated under it, mirroring SQLFreeHandle's
// cascading-free requirement.
func (r *Registry) FreeEnv(id uintptr) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.envs[id]; !ok {
		return false
	}
	for dbcID, dbc := range r.dbcs {
		if dbc.EnvID == id {
			r.freeDBCLocked(dbcID)
		}
	}
	delete(r.envs, id)
	return true
}

// FreeDBC releases a connection and every statement/descriptor allocated
// under it.
func (r *Registry) FreeDBC(id uintptr) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.dbcs[id]; !ok {
		return false
	}
	r.freeDBCLocked(id)
	return true
}

func (r *Registry) freeDBCLocked(id uintptr) {
	if dbc, ok := r.dbcs[id]; ok && dbc.Logger != nil {
		dbc.Logger.Close()
	}
	for stmtID, stmt := range r.stmts {
		if stmt.DBCID == id {
			delete(r.stmts, stmtID)
		}
	}
	for descID, desc := range r.descs {
		if desc.DBCID == id {
			delete(r.descs, descID)
		}
	}
	delete(r.dbcs, id)
}

// FreeSTMT releases a statement handle.
func (r *Registry) FreeSTMT(id uintptr) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.stmts[id]; !ok {
		return false
	}
	delete(r.stmts, id)
	return true
}

// FreeDESC releases a descriptor handle.
func (r *Registry) FreeDESC(id uintptr) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.descs[id]; !ok {
		return false
	}
	delete(r.descs, id)
	return true
}
