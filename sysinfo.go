package mtz

import (
	"fmt"

	"github.com/golang/glog"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/mem"
)

// CollectSysInfo describes the machine a solution was computed on. Fields
// gopsutil cannot determine are left as "unknown".
func CollectSysInfo() SysInfo {
	info := SysInfo{Platform: "unknown", CPU: "unknown", RAM: "unknown"}
	if hostStat, err := host.Info(); err == nil {
		info.Platform = hostStat.Platform
	} else {
		glog.Warningf("reading host info: %v", err)
	}
	if cpuStat, err := cpu.Info(); err == nil && len(cpuStat) > 0 {
		info.CPU = cpuStat[0].ModelName
	} else {
		glog.Warningf("reading cpu info: %v", err)
	}
	if vmStat, err := mem.VirtualMemory(); err == nil {
		info.RAM = fmt.Sprintf("%d GB", vmStat.Total/1024/1024/1024)
	} else {
		glog.Warningf("reading memory info: %v", err)
	}
	return info
}
