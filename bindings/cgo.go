package main

/*
#include <stdlib.h>
*/
import "C"
import (
	"encoding/json"
	"unsafe"

	fodmapdb "github.com/jfranmatheu/EverydayFODMAP-sub001"
	"github.com/jfranmatheu/EverydayFODMAP-sub001/core"
	"github.com/jfranmatheu/EverydayFODMAP-sub001/db"
	"github.com/jfranmatheu/EverydayFODMAP-sub001/ps"
)

// Handle represents an open database instance
type Handle struct {
	instance *fodmapdb.Instance
	diary    *db.DB
}

// Global handle storage (simplified - in production use a map with mutex)
var handles = make(map[int]*Handle)
var nextHandle = 1

// Response mirrors the server protocol for consistency. Success is
// false only for binding-level problems (bad handle, bad params JSON);
// the data layer itself never fails.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Type    string          `json:"type,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
}

type ExecResponse struct {
	GeneratedID  int64 `json:"generated_id,omitempty"`
	RowsAffected int   `json:"rows_affected"`
}

type RowsResponse struct {
	Rows  []core.Record `json:"rows"`
	Count int           `json:"count"`
}

type RowResponse struct {
	Row core.Record `json:"row"`
}

func register(instance *fodmapdb.Instance) C.int {
	handle := nextHandle
	nextHandle++
	handles[handle] = &Handle{
		instance: instance,
		diary:    instance.DB(nil),
	}
	return C.int(handle)
}

//export fodmapdb_open_memory
func fodmapdb_open_memory() C.int {
	return register(fodmapdb.Open(ps.NewMemoryBlobStore(), nil))
}

//export fodmapdb_open_file
func fodmapdb_open_file(path *C.char) C.int {
	blob, err := ps.NewFileBlobStore(C.GoString(path))
	if err != nil {
		return -1
	}
	return register(fodmapdb.Open(blob, nil))
}

//export fodmapdb_close
func fodmapdb_close(handle C.int) {
	delete(handles, int(handle))
}

// decodeParams parses the positional parameter list, passed as a JSON
// array ("[]" or NULL for none).
func decodeParams(raw *C.char) ([]any, error) {
	if raw == nil {
		return nil, nil
	}
	text := C.GoString(raw)
	if text == "" {
		return nil, nil
	}
	var params []any
	if err := json.Unmarshal([]byte(text), &params); err != nil {
		return nil, err
	}
	return params, nil
}

//export fodmapdb_run
func fodmapdb_run(handle C.int, query *C.char, paramsJSON *C.char) *C.char {
	h, ok := handles[int(handle)]
	if !ok {
		return makeErrorResponse("invalid handle")
	}
	params, err := decodeParams(paramsJSON)
	if err != nil {
		return makeErrorResponse("bad params: " + err.Error())
	}

	result := h.diary.Run(C.GoString(query), params...)
	data, _ := json.Marshal(ExecResponse{
		GeneratedID:  result.GeneratedID,
		RowsAffected: result.RowsAffected,
	})
	return makeResponse(Response{Success: true, Type: "exec", Result: data})
}

//export fodmapdb_query_all
func fodmapdb_query_all(handle C.int, query *C.char, paramsJSON *C.char) *C.char {
	h, ok := handles[int(handle)]
	if !ok {
		return makeErrorResponse("invalid handle")
	}
	params, err := decodeParams(paramsJSON)
	if err != nil {
		return makeErrorResponse("bad params: " + err.Error())
	}

	rows := h.diary.QueryAll(C.GoString(query), params...)
	data, _ := json.Marshal(RowsResponse{Rows: rows, Count: len(rows)})
	return makeResponse(Response{Success: true, Type: "rows", Result: data})
}

//export fodmapdb_query_first
func fodmapdb_query_first(handle C.int, query *C.char, paramsJSON *C.char) *C.char {
	h, ok := handles[int(handle)]
	if !ok {
		return makeErrorResponse("invalid handle")
	}
	params, err := decodeParams(paramsJSON)
	if err != nil {
		return makeErrorResponse("bad params: " + err.Error())
	}

	row := h.diary.QueryFirst(C.GoString(query), params...)
	data, _ := json.Marshal(RowResponse{Row: row})
	return makeResponse(Response{Success: true, Type: "row", Result: data})
}

//export fodmapdb_wipe
func fodmapdb_wipe(handle C.int) *C.char {
	h, ok := handles[int(handle)]
	if !ok {
		return makeErrorResponse("invalid handle")
	}
	h.diary.Wipe()
	return makeResponse(Response{Success: true, Type: "wipe"})
}

//export fodmapdb_free
func fodmapdb_free(ptr *C.char) {
	C.free(unsafe.Pointer(ptr))
}

func makeResponse(resp Response) *C.char {
	jsonData, _ := json.Marshal(resp)
	return C.CString(string(jsonData))
}

func makeErrorResponse(msg string) *C.char {
	return makeResponse(Response{Success: false, Error: msg})
}

func main() {}
