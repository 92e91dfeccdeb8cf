//go:build windows

package windows

import (
	"errors"
	"fmt"
	"syscall"
	"unsafe"

	"github.com/go-ole/go-ole"
)

var (
	clsidCUIAutomation = ole.NewGUID("{FF48DBA4-60EF-4201-AA87-54103EEF594E}")
	iidIUIAutomation   = ole.NewGUID("{30CBE57D-D9D0-452A-AB13-7AC5AC4825EE}")
)

// IUnknown / IUIAutomation / IUIAutomationTreeWalker / IUIAutomationElement
// vtable slots, in UIAutomationClient.h declaration order.
const (
	slotRelease = 2

	slotElementFromHandle = 6
	slotRawViewWalker     = 16

	slotFirstChildElement  = 4
	slotNextSiblingElement = 6

	slotCurrentControlType       = 21
	slotCurrentName              = 23
	slotCurrentIsEnabled         = 28
	slotCurrentAutomationID      = 29
	slotCurrentClassName         = 30
	slotCurrentIsOffscreen       = 38
	slotCurrentBoundingRectangle = 43
)

// comObject is a raw COM interface pointer.
type comObject uintptr

func (o comObject) method(slot int) uintptr {
	vtbl := *(*uintptr)(unsafe.Pointer(o))
	return *(*uintptr)(unsafe.Pointer(vtbl + uintptr(slot)*unsafe.Sizeof(uintptr(0))))
}

func (o comObject) release() {
	if o != 0 {
		syscall.SyscallN(o.method(slotRelease), uintptr(o))
	}
}

func hresult(hr uintptr) error {
	if int32(hr) < 0 {
		return ole.NewError(hr)
	}
	return nil
}

// comInit initialises COM on the calling thread. The returned func undoes it.
// The caller must hold the OS thread locked.
func comInit() (func(), error) {
	if err := ole.CoInitializeEx(0, ole.COINIT_MULTITHREADED); err != nil {
		var oleErr *ole.OleError
		// S_FALSE: already initialised on this thread, still needs balancing.
		if !errors.As(err, &oleErr) || oleErr.Code() != 1 {
			return nil, fmt.Errorf("CoInitializeEx: %w", err)
		}
	}
	return ole.CoUninitialize, nil
}

// automation wraps IUIAutomation.
type automation struct {
	obj    comObject
	walker comObject
}

func newAutomation() (*automation, error) {
	unk, err := ole.CreateInstance(clsidCUIAutomation, iidIUIAutomation)
	if err != nil {
		return nil, fmt.Errorf("create CUIAutomation: %w", err)
	}
	a := &automation{obj: comObject(unsafe.Pointer(unk))}

	var walker comObject
	hr, _, _ := syscall.SyscallN(a.obj.method(slotRawViewWalker), uintptr(a.obj), uintptr(unsafe.Pointer(&walker)))
	if err := hresult(hr); err != nil {
		a.obj.release()
		return nil, fmt.Errorf("get RawViewWalker: %w", err)
	}
	a.walker = walker
	return a, nil
}

func (a *automation) release() {
	a.walker.release()
	a.obj.release()
}

// elementFromHandle returns the element for a native window handle.
func (a *automation) elementFromHandle(hwnd uintptr) (element, error) {
	var el comObject
	hr, _, _ := syscall.SyscallN(a.obj.method(slotElementFromHandle), uintptr(a.obj), hwnd, uintptr(unsafe.Pointer(&el)))
	if err := hresult(hr); err != nil {
		return 0, err
	}
	if el == 0 {
		return 0, fmt.Errorf("no automation element for window %#x", hwnd)
	}
	return element(el), nil
}

// firstChild returns the first raw-view child, or 0 when there is none.
func (a *automation) firstChild(parent element) (element, error) {
	var el comObject
	hr, _, _ := syscall.SyscallN(a.walker.method(slotFirstChildElement), uintptr(a.walker), uintptr(parent), uintptr(unsafe.Pointer(&el)))
	return element(el), hresult(hr)
}

// nextSibling returns the next raw-view sibling, or 0 when there is none.
func (a *automation) nextSibling(cur element) (element, error) {
	var el comObject
	hr, _, _ := syscall.SyscallN(a.walker.method(slotNextSiblingElement), uintptr(a.walker), uintptr(cur), uintptr(unsafe.Pointer(&el)))
	return element(el), hresult(hr)
}

// element wraps IUIAutomationElement.
type element comObject

func (e element) release() { comObject(e).release() }

func (e element) bstrProperty(slot int) (string, error) {
	var bstr *uint16
	hr, _, _ := syscall.SyscallN(comObject(e).method(slot), uintptr(e), uintptr(unsafe.Pointer(&bstr)))
	if err := hresult(hr); err != nil {
		return "", err
	}
	if bstr == nil {
		return "", nil
	}
	s := ole.BstrToString(bstr)
	ole.SysFreeString((*int16)(unsafe.Pointer(bstr)))
	return s, nil
}

func (e element) int32Property(slot int) (int32, error) {
	var v int32
	hr, _, _ := syscall.SyscallN(comObject(e).method(slot), uintptr(e), uintptr(unsafe.Pointer(&v)))
	return v, hresult(hr)
}

func (e element) name() (string, error)         { return e.bstrProperty(slotCurrentName) }
func (e element) className() (string, error)    { return e.bstrProperty(slotCurrentClassName) }
func (e element) automationID() (string, error) { return e.bstrProperty(slotCurrentAutomationID) }

func (e element) controlType() (int, error) {
	v, err := e.int32Property(slotCurrentControlType)
	return int(v), err
}

func (e element) isEnabled() (bool, error) {
	v, err := e.int32Property(slotCurrentIsEnabled)
	return v != 0, err
}

func (e element) isOffscreen() (bool, error) {
	v, err := e.int32Property(slotCurrentIsOffscreen)
	return v != 0, err
}

func (e element) boundingRectangle() (rect, error) {
	var r rect
	hr, _, _ := syscall.SyscallN(comObject(e).method(slotCurrentBoundingRectangle), uintptr(e), uintptr(unsafe.Pointer(&r)))
	return r, hresult(hr)
}
