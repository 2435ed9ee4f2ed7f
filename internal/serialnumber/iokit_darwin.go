// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

//go:build darwin && cgo && !ios

package serialnumber

// #cgo LDFLAGS: -framework CoreFoundation -framework IOKit
// #include <stdlib.h>
// #include <AvailabilityMacros.h>
// #include <CoreFoundation/CoreFoundation.h>
// #include <IOKit/IOKitLib.h>
//
// #if __MAC_OS_X_VERSION_MIN_REQUIRED < 120000
// #define kIOMainPortDefault kIOMasterPortDefault
// #endif
//
// // Consumes the matching dictionary.
// static io_service_t
// firstMatchingService(CFMutableDictionaryRef matching)
// {
//     return IOServiceGetMatchingService(kIOMainPortDefault, matching);
// }
//
// static CFTypeRef
// copyProperty(io_registry_entry_t entry, const char *key)
// {
//     CFStringRef keyRef = CFStringCreateWithCString(kCFAllocatorDefault, key, kCFStringEncodingUTF8);
//     if (keyRef == NULL) {
//         return NULL;
//     }
//     CFTypeRef value = IORegistryEntryCreateCFProperty(entry, keyRef, kCFAllocatorDefault, 0);
//     CFRelease(keyRef);
//     return value;
// }
//
// static int
// isString(CFTypeRef value)
// {
//     return CFGetTypeID(value) == CFStringGetTypeID();
// }
//
// static char *
// copyUTF8(CFTypeRef value)
// {
//     CFStringRef str = (CFStringRef)value;
//     CFIndex length = CFStringGetLength(str);
//     CFIndex size = CFStringGetMaximumSizeForEncoding(length, kCFStringEncodingUTF8) + 1;
//     char *buf = malloc(size);
//     if (buf == NULL) {
//         return NULL;
//     }
//     if (!CFStringGetCString(str, buf, size, kCFStringEncodingUTF8)) {
//         free(buf);
//         return NULL;
//     }
//     return buf;
// }
//
// static char *
// copyTypeName(CFTypeRef value)
// {
//     CFStringRef desc = CFCopyTypeIDDescription(CFGetTypeID(value));
//     if (desc == NULL) {
//         return NULL;
//     }
//     char *name = copyUTF8(desc);
//     CFRelease(desc);
//     return name;
// }
import "C"

import (
	"fmt"
	"unsafe"
)

// iokitRegistry reads properties through IOKit.framework.
type iokitRegistry struct {
	check func() error
}

func newIOKitRegistry() Registry {
	return iokitRegistry{check: checkHost}
}

func defaultRegistry(...IoregOption) Registry {
	return newIOKitRegistry()
}

func (r iokitRegistry) Lookup(class, key string) (Value, error) {
	if err := r.check(); err != nil {
		return Absent(), err
	}

	cclass := C.CString(class)
	defer C.free(unsafe.Pointer(cclass))
	matching := C.IOServiceMatching(cclass)
	if matching == 0 {
		return Absent(), fmt.Errorf("%w: cannot create matching dictionary for %s", ErrRegistry, class)
	}

	service := C.firstMatchingService(matching)
	if service == 0 {
		return Absent(), fmt.Errorf("%w: %s", ErrNoMatchingEntry, class)
	}
	defer C.IOObjectRelease(service)

	ckey := C.CString(key)
	defer C.free(unsafe.Pointer(ckey))
	property := C.copyProperty(service, ckey)
	if property == 0 {
		return Absent(), fmt.Errorf("%w: %s", ErrNoProperty, key)
	}
	defer C.CFRelease(property)

	return cfValue(property), nil
}

func cfValue(property C.CFTypeRef) Value {
	if C.isString(property) == 0 {
		name := C.copyTypeName(property)
		if name == nil {
			return Other("CFType")
		}
		defer C.free(unsafe.Pointer(name))
		return Other(C.GoString(name))
	}

	str := C.copyUTF8(property)
	if str == nil {
		return Absent()
	}
	defer C.free(unsafe.Pointer(str))
	return Text(C.GoString(str))
}
